package data

import (
	"encoding/json"
	"fmt"
)

// Колонки *Json хранят множества ID пользователей (лайки, голоса,
// участники событий) как JSON-массивы — так их присылал и читал клиент.

func decodeIDSet(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, fmt.Errorf("failed to parse id set %q: %w", s, err)
	}
	return ids, nil
}

func encodeIDSet(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to marshal id set: %w", err)
	}
	return string(b), nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// toggleID добавляет ID, если его нет, и убирает, если есть.
func toggleID(ids []int64, id int64) []int64 {
	if containsID(ids, id) {
		return removeID(ids, id)
	}
	return append(ids, id)
}
