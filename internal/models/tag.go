package models

import "strings"

// Tag is a visual category applied to a task. It carries no behavior.
// The zero value means "not given" and is replaced by DefaultTag on insert.
type Tag string

const (
	TagUnspecified Tag = "UNSPECIFIED"
	TagGray        Tag = "GRAY"
	TagRed         Tag = "RED"
	TagPink        Tag = "PINK"
	TagOrange      Tag = "ORANGE"
	TagAmber       Tag = "AMBER"
	TagYellow      Tag = "YELLOW"
	TagLime        Tag = "LIME"
	TagGreen       Tag = "GREEN"
	TagTeal        Tag = "TEAL"
	TagCyan        Tag = "CYAN"
	TagBlue        Tag = "BLUE"
	TagIndigo      Tag = "INDIGO"
	TagPurple      Tag = "PURPLE"
	TagBrown       Tag = "BROWN"
)

// DefaultTag is used when a task is created without a tag
const DefaultTag = TagGray

// Tags lists every tag in display order
func Tags() []Tag {
	return []Tag{
		TagUnspecified, TagGray, TagRed, TagPink, TagOrange, TagAmber, TagYellow,
		TagLime, TagGreen, TagTeal, TagCyan, TagBlue, TagIndigo, TagPurple, TagBrown,
	}
}

// ParseTag resolves a tag name case-insensitively
func ParseTag(s string) (Tag, bool) {
	candidate := Tag(strings.ToUpper(strings.TrimSpace(s)))
	for _, tag := range Tags() {
		if tag == candidate {
			return tag, true
		}
	}
	return TagUnspecified, false
}

// OrDefault returns DefaultTag when t was not given
func (t Tag) OrDefault() Tag {
	if t == "" {
		return DefaultTag
	}
	return t
}

// Hex is the display color of the tag
func (t Tag) Hex() string {
	switch t {
	case TagGray:
		return "#9E9E9E"
	case TagRed:
		return "#F44336"
	case TagPink:
		return "#E91E63"
	case TagOrange:
		return "#FF9800"
	case TagAmber:
		return "#FFC107"
	case TagYellow:
		return "#FFEB3B"
	case TagLime:
		return "#CDDC39"
	case TagGreen:
		return "#4CAF50"
	case TagTeal:
		return "#009688"
	case TagCyan:
		return "#00BCD4"
	case TagBlue:
		return "#2196F3"
	case TagIndigo:
		return "#3F51B5"
	case TagPurple:
		return "#9C27B0"
	case TagBrown:
		return "#795548"
	default:
		return ""
	}
}

func (t Tag) String() string {
	return strings.ToLower(string(t))
}
