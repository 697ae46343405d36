package cmdutils

import (
	"fmt"
	"io"
)

// Logo prefixes CLI banners and report titles.
const Logo = "🛡"

// PrintReport writes a titled report block to w.
func PrintReport(w io.Writer, title, text string) {
	if text == "" {
		return
	}

	fmt.Fprintf(w, "\n%s %s\n%s\n\n", Logo, title, text)
}
