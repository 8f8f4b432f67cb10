package domain

import (
	"encoding/json"
	"strings"
)

// MemoDateLayout is the layout of Memo.Date.
const MemoDateLayout = "2006-01-02 15:04"

// Memo is an append-only note attached to a schedule. Lists are kept
// newest first.
type Memo struct {
	ID      int    `json:"id"`
	Date    string `json:"date"`
	Writer  string `json:"writer"`
	Content string `json:"content"`
}

// DecodeMemos parses the memoList cell. An empty cell is an empty list.
func DecodeMemos(cell string) ([]Memo, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return []Memo{}, nil
	}
	var memos []Memo
	if err := json.Unmarshal([]byte(cell), &memos); err != nil {
		return nil, err
	}
	if memos == nil {
		memos = []Memo{}
	}
	return memos, nil
}

// EncodeMemos renders memos as the JSON array stored in the memoList cell.
func EncodeMemos(memos []Memo) string {
	if len(memos) == 0 {
		return "[]"
	}
	b, err := json.Marshal(memos)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// PrependMemo returns a new list with a memo carrying the next sequence id
// in front of memos.
func PrependMemo(memos []Memo, date, writer, content string) []Memo {
	next := 1
	for _, m := range memos {
		if m.ID >= next {
			next = m.ID + 1
		}
	}
	out := make([]Memo, 0, len(memos)+1)
	out = append(out, Memo{ID: next, Date: date, Writer: writer, Content: content})
	return append(out, memos...)
}
