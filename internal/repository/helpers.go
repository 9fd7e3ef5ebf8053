package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/foodfest/api/internal/database"
)

// recordID renders a SurrealDB record id as "table:key".
func recordID(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
		return ""
	case map[string]interface{}:
		tb, _ := v["tb"].(string)
		if tb == "" {
			tb, _ = v["Table"].(string)
		}
		key := v["id"]
		if key == nil {
			key = v["ID"]
		}
		if tb != "" && key != nil {
			return fmt.Sprintf("%s:%v", tb, key)
		}
	}
	return fmt.Sprintf("%v", id)
}

// isRecordOf reports whether id looks like "<table>:<key>".
func isRecordOf(table, id string) bool {
	key, ok := strings.CutPrefix(id, table+":")
	return ok && key != ""
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getFloat accepts every numeric type the CBOR decoder may produce.
func getFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return 0
}

func getInt(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	}
	return 0
}

func getBool(m map[string]interface{}, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func getTime(m map[string]interface{}, key string) time.Time {
	switch v := m[key].(type) {
	case time.Time:
		return v
	case models.CustomDateTime:
		return v.Time
	case *models.CustomDateTime:
		if v != nil {
			return v.Time
		}
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// getStringSlice returns a non-nil slice; non-string entries are rendered as record ids.
func getStringSlice(m map[string]interface{}, key string) []string {
	raw, _ := m[key].([]interface{})
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s := recordID(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// rows returns the records of statement stmt as maps, skipping anything else.
func rows(results []interface{}, stmt int) []map[string]interface{} {
	records := database.Records(results, stmt)
	out := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		if data, ok := r.(map[string]interface{}); ok {
			out = append(out, data)
		}
	}
	return out
}

// firstRow returns the first record produced by a CREATE or SELECT.
func firstRow(results []interface{}) (map[string]interface{}, error) {
	rec, err := database.FirstRecord(results)
	if err != nil {
		return nil, err
	}
	data, ok := rec.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result format %T", rec)
	}
	return data, nil
}

// extractCount reads {count} from a GROUP ALL statement.
func extractCount(results []interface{}, stmt int) int {
	r := rows(results, stmt)
	if len(r) == 0 {
		return 0
	}
	return getInt(r[0], "count")
}

// extractSum reads {total} from a GROUP ALL statement.
func extractSum(results []interface{}, stmt int) float64 {
	r := rows(results, stmt)
	if len(r) == 0 {
		return 0
	}
	return getFloat(r[0], "total")
}
