package keyword

// DefaultEntries is the stock keyword list. Longer keywords that share a
// prefix with a shorter one are listed first.
func DefaultEntries() []Entry {
	return []Entry{
		{Pattern: "HOLD", Style: StyleRef{Color: "#d0bf8f"}},
		{Pattern: "TODO", Style: StyleRef{Color: "#cc9393"}},
		{Pattern: "NEXT", Style: StyleRef{Color: "#dca3a3"}},
		{Pattern: "THEM", Style: StyleRef{Color: "#dc8cc3"}},
		{Pattern: "PROG", Style: StyleRef{Color: "#7cb8bb"}},
		{Pattern: "OKAY", Style: StyleRef{Color: "#7cb8bb"}},
		{Pattern: "DONT", Style: StyleRef{Color: "#5f7f5f"}},
		{Pattern: "FAIL", Style: StyleRef{Color: "#8c5353"}},
		{Pattern: "DONE", Style: StyleRef{Color: "#afd8af"}},
		{Pattern: "NOTE", Style: StyleRef{Color: "#d0bf8f"}},
		{Pattern: "MAYBE", Style: StyleRef{Color: "#d0bf8f"}},
		{Pattern: "KLUDGE", Style: StyleRef{Color: "#d0bf8f"}},
		{Pattern: "HACK", Style: StyleRef{Color: "#d0bf8f"}},
		{Pattern: "TEMP", Style: StyleRef{Color: "#d0bf8f"}},
		{Pattern: "FIXME", Style: StyleRef{Color: "#cc9393"}},
		{Pattern: "XXXX*", Style: StyleRef{Color: "#cc9393"}},
	}
}

// DefaultTextKinds lists the prose buffer kinds.
func DefaultTextKinds() []string {
	return []string{"text", "markdown", "rst", "asciidoc", "org"}
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Entries:     DefaultEntries(),
		Punctuation: "",
		TextKinds:   DefaultTextKinds(),
	}
}
