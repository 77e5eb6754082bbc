package humanizer

import (
	"strings"

	"txHumanizer/internal/format"
	"txHumanizer/internal/model"
)

// Summary is the single decision tree a summary function builds. Plain and
// extended output are both rendered from it.
type Summary struct {
	actions []model.Action
}

// NewSummary starts an empty summary.
func NewSummary() *Summary {
	return &Summary{}
}

// Action appends a new action of the given kind (claim, stake, approve...).
func (s *Summary) Action(kind string) *ActionBuilder {
	s.actions = append(s.actions, model.Action{Kind: kind})
	return &ActionBuilder{summary: s, index: len(s.actions) - 1}
}

// Actions returns the extended form.
func (s *Summary) Actions() []model.Action {
	if s == nil {
		return nil
	}
	out := make([]model.Action, len(s.actions))
	for i, a := range s.actions {
		out[i] = model.Action{Kind: a.Kind, Segments: append([]model.Segment(nil), a.Segments...)}
	}
	return out
}

// Lines returns the plain form, one line per action.
func (s *Summary) Lines() []string {
	if s == nil {
		return nil
	}
	lines := make([]string, 0, len(s.actions))
	for _, a := range s.actions {
		lines = append(lines, PlainText(a.Segments))
	}
	return lines
}

// ActionBuilder appends segments to one action.
type ActionBuilder struct {
	summary *Summary
	index   int
}

func (b *ActionBuilder) add(seg model.Segment) *ActionBuilder {
	a := &b.summary.actions[b.index]
	a.Segments = append(a.Segments, seg)
	return b
}

// Text appends literal text.
func (b *ActionBuilder) Text(text string) *ActionBuilder {
	if text == "" {
		return b
	}
	return b.add(model.Segment{Kind: model.SegmentText, Text: text})
}

// Address appends an address reference.
func (b *ActionBuilder) Address(ref model.AddressRef) *ActionBuilder {
	return b.add(model.Segment{Kind: model.SegmentAddress, Address: &ref})
}

// Token appends a token reference.
func (b *ActionBuilder) Token(ref model.TokenRef) *ActionBuilder {
	return b.add(model.Segment{Kind: model.SegmentToken, Token: &ref})
}

// Note appends ", <note>" unless note is empty.
func (b *ActionBuilder) Note(note string) *ActionBuilder {
	if note == "" {
		return b
	}
	return b.Text(", " + note)
}

// PlainText joins segments with single spaces. Text starting with
// punctuation attaches to the previous segment and empty labels are dropped.
func PlainText(segments []model.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		text := SegmentText(seg)
		if text == "" {
			continue
		}
		if sb.Len() > 0 && !strings.HasPrefix(text, ",") && !strings.HasPrefix(text, ".") {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// SegmentText renders one segment as plain text.
func SegmentText(seg model.Segment) string {
	switch seg.Kind {
	case model.SegmentAddress:
		if seg.Address == nil {
			return ""
		}
		return AddressLabel(*seg.Address)
	case model.SegmentToken:
		if seg.Token == nil {
			return ""
		}
		return TokenLabel(*seg.Token)
	default:
		return seg.Text
	}
}

// AddressLabel is the display name of an address reference.
func AddressLabel(ref model.AddressRef) string {
	if ref.Name != "" {
		return ref.Name
	}
	return ref.Address
}

// TokenLabel renders a token reference:
// "<amount> <symbol>" with metadata, "<raw> units of <name>" without, and
// only the symbol or name when no amount is attached.
func TokenLabel(ref model.TokenRef) string {
	if ref.Known {
		if ref.Amount == "" {
			return ref.Symbol
		}
		precision := ref.Precision
		if precision <= 0 {
			precision = int(ref.Decimals)
		}
		amount := ref.Amount
		// No minimum fraction digits: "Stake 5 LP", never "5.00 LP".
		if v, ok := format.ParseRaw(ref.Amount); ok {
			amount = format.FormatAmount(v, ref.Decimals, format.AmountOptions{
				Grouping:          true,
				MaxFractionDigits: precision,
			})
		}
		return strings.TrimSpace(amount + " " + ref.Symbol)
	}
	if strings.TrimSpace(ref.Address) == "" {
		if ref.Amount == "" {
			return ""
		}
		return ref.Amount + " units"
	}
	label := ref.Symbol
	if label == "" {
		label = ref.Address
	}
	if ref.Amount == "" {
		return label
	}
	return ref.Amount + " units of " + label
}
