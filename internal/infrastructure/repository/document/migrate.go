package document

import (
	"sort"
	"strings"
	"time"
)

// Upgrader maps one legacy document shape forward. Apply reports whether it
// changed the document.
type Upgrader struct {
	Name  string
	Apply func(doc any) (any, bool)
}

// Chain runs upgraders in order, each seeing the output of the previous one.
type Chain []Upgrader

// Upgrade returns the current-shape document and the names of the upgraders
// that fired.
func (c Chain) Upgrade(doc any) (any, []string) {
	var applied []string
	for _, u := range c {
		next, changed := u.Apply(doc)
		doc = next
		if changed {
			applied = append(applied, u.Name)
		}
	}
	return doc, applied
}

// ChainFor returns the upgrade chain of a resource.
func ChainFor(resource string) Chain {
	switch resource {
	case ResourceNews, ResourceTournaments:
		return Chain{
			collectionRoot(),
			eachRecord("image-url-to-list", singularToList("imageUrl", "imageUrls")),
		}
	case ResourceTeams:
		return Chain{
			collectionRoot(),
			eachRecord("default-roster", defaultList("roster")),
		}
	case ResourceLeaderboard:
		return Chain{
			{Name: "leaderboard-image-url-to-list", Apply: objectOnly(singularToList("leaderboardImageUrl", "leaderboardImageUrls"))},
			{Name: "default-entries", Apply: objectOnly(defaultList("entries"))},
		}
	case ResourcePrediction:
		return Chain{
			{Name: "question-log-to-current", Apply: latestQuestionFromLog},
			{Name: "legacy-question-fields", Apply: objectOnly(legacyQuestionFields)},
		}
	default:
		return nil
	}
}

// collectionRoot turns an absent or null document into an empty array.
func collectionRoot() Upgrader {
	return Upgrader{
		Name: "empty-collection",
		Apply: func(doc any) (any, bool) {
			if doc == nil {
				return []any{}, true
			}
			return doc, false
		},
	}
}

func eachRecord(name string, fn func(map[string]any) bool) Upgrader {
	return Upgrader{
		Name: name,
		Apply: func(doc any) (any, bool) {
			items, ok := doc.([]any)
			if !ok {
				return doc, false
			}
			changed := false
			for _, item := range items {
				if record, ok := item.(map[string]any); ok && fn(record) {
					changed = true
				}
			}
			return doc, changed
		},
	}
}

func objectOnly(fn func(map[string]any) bool) func(any) (any, bool) {
	return func(doc any) (any, bool) {
		record, ok := doc.(map[string]any)
		if !ok {
			return doc, false
		}
		return doc, fn(record)
	}
}

// singularToList folds a legacy single URL field into its list field. An
// existing list wins and the legacy key is always dropped.
func singularToList(legacy, current string) func(map[string]any) bool {
	return func(record map[string]any) bool {
		changed := false
		if _, ok := record[current].([]any); !ok {
			list := []any{}
			if v, ok := record[legacy].(string); ok && strings.TrimSpace(v) != "" {
				list = append(list, strings.TrimSpace(v))
			}
			record[current] = list
			changed = true
		}
		if _, ok := record[legacy]; ok {
			delete(record, legacy)
			changed = true
		}
		return changed
	}
}

func defaultList(key string) func(map[string]any) bool {
	return func(record map[string]any) bool {
		if _, ok := record[key].([]any); ok {
			return false
		}
		record[key] = []any{}
		return true
	}
}

// latestQuestionFromLog reduces a legacy questions log to the question that
// was on display: the newest active item, else the newest item.
func latestQuestionFromLog(doc any) (any, bool) {
	items, ok := doc.([]any)
	if !ok {
		return doc, false
	}

	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	if len(records) == 0 {
		return nil, true
	}

	sort.SliceStable(records, func(i, j int) bool {
		return recordTime(records[i]).After(recordTime(records[j]))
	})
	for _, record := range records {
		if isActiveQuestion(record) {
			return record, true
		}
	}
	return records[0], true
}

func isActiveQuestion(record map[string]any) bool {
	if active, ok := record["isActive"].(bool); ok {
		return active
	}
	if status, ok := record["status"].(string); ok {
		return strings.EqualFold(status, "active") || strings.EqualFold(status, "open")
	}
	return false
}

func recordTime(record map[string]any) time.Time {
	v, _ := record["createdAt"].(string)
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

var legacyQuestionKeys = []string{"options", "correctAnswer", "rewardDescription", "status", "isActive", "id"}

// legacyQuestionFields renames question/googleFormLink and drops fields that
// only the old multiple-choice format carried.
func legacyQuestionFields(record map[string]any) bool {
	changed := false
	if _, ok := record["questionText"]; !ok {
		if v, ok := record["question"]; ok {
			record["questionText"] = v
			changed = true
		}
	}
	if _, ok := record["question"]; ok {
		delete(record, "question")
		changed = true
	}
	if _, ok := record["googleFormUrl"]; !ok {
		if v, ok := record["googleFormLink"]; ok {
			record["googleFormUrl"] = v
			changed = true
		}
	}
	if _, ok := record["googleFormLink"]; ok {
		delete(record, "googleFormLink")
		changed = true
	}
	for _, key := range legacyQuestionKeys {
		if _, ok := record[key]; ok {
			delete(record, key)
			changed = true
		}
	}
	for _, key := range []string{"createdAt", "updatedAt"} {
		switch v := record[key].(type) {
		case nil:
		case string:
			if _, err := time.Parse(time.RFC3339Nano, v); err != nil {
				delete(record, key)
				changed = true
			}
		default:
			delete(record, key)
			changed = true
		}
	}
	return changed
}
