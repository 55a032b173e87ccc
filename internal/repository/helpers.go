package repository

import (
	"encoding/json"
	"strings"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// convertRecordID extracts a record ID string from SurrealDB's ID formats
func convertRecordID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return v.String()
	case *models.RecordID:
		if v != nil {
			return v.String()
		}
	case map[string]interface{}:
		// Handle {"tb": "table", "id": "xxx"} format
		if tb, ok := v["tb"].(string); ok {
			if id, ok := v["id"].(string); ok {
				return tb + ":" + id
			}
		}
	}

	// Try JSON marshaling as fallback
	if data, err := json.Marshal(id); err == nil {
		var recordID models.RecordID
		if err := json.Unmarshal(data, &recordID); err == nil {
			return recordID.String()
		}
	}

	return ""
}

// unwrapResults extracts the record maps from a Query response, which
// wraps each statement result as {status: "OK", result: [...]}
func unwrapResults(result []interface{}) []map[string]interface{} {
	var records []map[string]interface{}
	for _, r := range result {
		resp, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		resultData, ok := resp["result"].([]interface{})
		if !ok {
			// Single-record result
			if data, ok := resp["result"].(map[string]interface{}); ok {
				records = append(records, data)
			}
			continue
		}
		for _, item := range resultData {
			if data, ok := item.(map[string]interface{}); ok {
				records = append(records, data)
			}
		}
	}
	return records
}

// unwrapOne navigates a QueryOne response down to a single record map
func unwrapOne(result interface{}) (map[string]interface{}, bool) {
	if result == nil {
		return nil, false
	}

	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, false
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, false
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	return data, ok
}

// decodeRecord normalizes SurrealDB ID formats in place and decodes the
// record map into the given struct via JSON round-trip
func decodeRecord(data map[string]interface{}, v interface{}) error {
	if id, ok := data["id"]; ok {
		data["id"] = convertRecordID(id)
	}
	normalizeRefs(data, "user_id", "club_id", "owner_id", "created_by")

	// Normalize IDs nested in roster entries
	for _, key := range []string{"members", "registered_participants"} {
		if entries, ok := data[key].([]interface{}); ok {
			for _, e := range entries {
				if entry, ok := e.(map[string]interface{}); ok {
					normalizeRefs(entry, "user_id")
				}
			}
		}
	}
	for _, key := range []string{"clubs_joined", "clubs_owned"} {
		if refs, ok := data[key].([]interface{}); ok {
			for i, ref := range refs {
				refs[i] = convertRecordID(ref)
			}
		}
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonBytes, v)
}

// normalizeRefs converts record-reference fields to plain ID strings
func normalizeRefs(data map[string]interface{}, keys ...string) {
	for _, key := range keys {
		if ref, ok := data[key]; ok {
			if _, isString := ref.(string); !isString {
				data[key] = convertRecordID(ref)
			}
		}
	}
}

// extractCount extracts a count from a SurrealDB count query result
func extractCount(result interface{}) int {
	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok && len(resultData) > 0 {
				if data, ok := resultData[0].(map[string]interface{}); ok {
					return extractCountValue(data["count"])
				}
			}
		}
		return extractCountValue(resp["count"])
	}
	return 0
}

// extractCountValue converts various numeric types to int
func extractCountValue(v interface{}) int {
	switch c := v.(type) {
	case float64:
		return int(c)
	case float32:
		return int(c)
	case int:
		return c
	case int64:
		return int(c)
	case uint64:
		return int(c)
	}
	return 0
}

// nilIfEmpty returns nil for empty strings so optional fields persist as NONE
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
