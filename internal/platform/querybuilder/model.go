package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// columnPlan lists the insertable db columns of a struct type and the field
// index that feeds each one.
type columnPlan struct {
	columns []string
	fields  []int
}

var plans sync.Map // reflect.Type -> *columnPlan

// InsertModel builds an INSERT of one row from the `db` tags of model.
// Fields tagged `db:"name,readonly"` are left to column defaults.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, errors.New("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("model must be a struct, got %s", value.Kind())
	}

	plan, err := planFor(value.Type())
	if err != nil {
		return "", nil, err
	}
	values := make([]any, len(plan.fields))
	for i, idx := range plan.fields {
		values[i] = value.Field(idx).Interface()
	}

	return InsertInto(table).
		Columns(plan.columns...).
		Values(values...).
		Suffix(suffix).
		ToSQL()
}

func planFor(typ reflect.Type) (*columnPlan, error) {
	if cached, ok := plans.Load(typ); ok {
		return cached.(*columnPlan), nil
	}

	plan := &columnPlan{}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" || hasOption(opts, "readonly") {
			continue
		}
		plan.columns = append(plan.columns, name)
		plan.fields = append(plan.fields, i)
	}
	if len(plan.columns) == 0 {
		return nil, fmt.Errorf("%s has no insertable db columns", typ)
	}

	actual, _ := plans.LoadOrStore(typ, plan)
	return actual.(*columnPlan), nil
}

func hasOption(opts, want string) bool {
	for _, opt := range strings.Split(opts, ",") {
		if strings.TrimSpace(opt) == want {
			return true
		}
	}
	return false
}
