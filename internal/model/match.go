package model

// Direction は検索方向を表します。
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// MatchKind は検出位置の種別（コメント／文字列など）。
type MatchKind string

const (
	MatchKindUnknown MatchKind = "unknown"
	MatchKindComment MatchKind = "comment"
	MatchKindString  MatchKind = "string"
	MatchKindText    MatchKind = "text"
)

// Match は 1 件のキーワード出現をルーン単位のオフセットで表します。
// Start/End はキーワードと後続の句読点を含む範囲です。
type Match struct {
	Start   int
	End     int
	Keyword string
	Punct   string
}

// Len は一致範囲のルーン数を返します。
func (m Match) Len() int { return m.End - m.Start }

// Text はキーワードと句読点を連結した一致文字列を返します。
func (m Match) Text() string { return m.Keyword + m.Punct }

// Span は一致範囲を行・桁で表します（いずれも 1 始まり、桁はルーン単位）。
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Start     int
	End       int
}
