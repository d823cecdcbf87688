package readdoc_test

import "github.com/fwojciec/readdoc"

// Run constructors for building test documents.

func plain(text string) *readdoc.Run {
	return &readdoc.Run{Text: text}
}

func bold(text string) *readdoc.Run {
	return &readdoc.Run{Text: text, Style: readdoc.RunStyle{Bold: true}}
}

func highlighted(text string) *readdoc.Run {
	return &readdoc.Run{Text: text, Style: readdoc.RunStyle{Highlight: readdoc.On("yellow")}}
}

func underlined(text string) *readdoc.Run {
	return &readdoc.Run{Text: text, Style: readdoc.RunStyle{Underline: readdoc.On("single")}}
}

func marked(text string) *readdoc.Run {
	return &readdoc.Run{Text: text, Style: readdoc.RunStyle{
		Highlight: readdoc.On("cyan"),
		Underline: readdoc.On("single"),
	}}
}

func para(runs ...*readdoc.Run) *readdoc.Paragraph {
	return &readdoc.Paragraph{Runs: runs}
}

func styled(style string, runs ...*readdoc.Run) *readdoc.Paragraph {
	return &readdoc.Paragraph{StyleName: style, Runs: runs}
}

func doc(paras ...*readdoc.Paragraph) *readdoc.Document {
	return &readdoc.Document{Paragraphs: paras}
}

func texts(d *readdoc.Document) []string {
	out := make([]string, 0, len(d.Paragraphs))
	for _, p := range d.Paragraphs {
		out = append(out, p.Text())
	}
	return out
}

var allModes = []readdoc.Mode{
	readdoc.Highlighted,
	readdoc.Underlined,
	readdoc.Both,
	readdoc.BothRequired,
}
