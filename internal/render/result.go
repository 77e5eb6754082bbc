package render

import (
	"fmt"
	"strings"

	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/model"
	"txHumanizer/internal/namer"
)

// Result renders a humanized transaction in a bordered box: a
// module.method header followed by one line per action.
func Result(res *humanizer.Result, network model.Network) string {
	if res == nil {
		return Warn("unrecognized transaction")
	}
	var sb strings.Builder
	sb.WriteString(styleModule.Render(res.Module + "." + res.Method))
	sb.WriteString(" ")
	sb.WriteString(Meta(fmt.Sprintf("%s on %s", res.Selector, network.Name)))

	for _, line := range res.Lines {
		sb.WriteString("\n")
		sb.WriteString("• " + line)
	}
	for _, action := range res.Actions {
		sb.WriteString("\n")
		sb.WriteString("• " + Action(action))
	}
	return styleBox.Render(sb.String())
}

// Action renders an extended action with addresses and amounts highlighted.
func Action(action model.Action) string {
	var sb strings.Builder
	for _, seg := range action.Segments {
		text := humanizer.SegmentText(seg)
		if text == "" {
			continue
		}
		if sb.Len() > 0 && !strings.HasPrefix(text, ",") && !strings.HasPrefix(text, ".") {
			sb.WriteByte(' ')
		}
		switch seg.Kind {
		case model.SegmentAddress:
			if seg.Address != nil && seg.Address.Name == "" {
				text = TruncateAddr(text)
			}
			sb.WriteString(styleAddress.Render(text))
		case model.SegmentToken:
			sb.WriteString(styleValue.Render(text))
		default:
			sb.WriteString(text)
		}
	}
	if action.Kind != "" {
		sb.WriteString(" " + Meta("["+action.Kind+"]"))
	}
	return sb.String()
}

// Selectors renders a registry snapshot as a table.
func Selectors(entries []humanizer.SelectorEntry) string {
	t := newTable([]column{
		{title: "SCOPE", width: 12},
		{title: "SELECTOR", width: 10},
		{title: "MODULE", width: 24},
		{title: "SIGNATURE", width: 0},
	})
	for _, e := range entries {
		scope := e.Scope
		if scope != humanizer.GlobalScope {
			scope = TruncateAddr(scope)
		}
		t.addRow(scope, e.Selector, e.Module, e.Signature)
	}
	return t.render()
}

// Matches renders lookup hits as name and address pairs.
func Matches(matches []namer.Match) string {
	if len(matches) == 0 {
		return Meta("no matches")
	}
	t := newTable([]column{
		{title: "NAME", width: 28},
		{title: "ADDRESS", width: 0},
	})
	for _, m := range matches {
		t.addRow(m.Desc, m.Address)
	}
	return t.render()
}
