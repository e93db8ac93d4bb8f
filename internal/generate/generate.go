package generate

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/raphi011/shim/internal/shim"
)

// TimestampFormat is the layout used in the wrapper header comments.
const TimestampFormat = "2006-01-02 15:04:05"

// Options configures wrapper generation.
type Options struct {
	Shell  string    // "bash", "zsh", or "fish"
	Binary string    // absolute path of the shim executable
	Now    time.Time // recorded in the header comments
}

// Write renders one wrapper function per registered program, sorted by name.
func Write(w io.Writer, reg *shim.Registry, opts Options) error {
	render, err := renderer(opts.Shell)
	if err != nil {
		return err
	}

	timestamp := opts.Now.Format(TimestampFormat)
	for i, program := range reg.Programs() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		src, _ := reg.Source(program)
		fn := render(program, header(program, opts.Binary, src, timestamp), quote(opts.Binary))
		if _, err := io.WriteString(w, fn); err != nil {
			return err
		}
	}
	return nil
}

type renderFunc func(program, header, binary string) string

func renderer(shell string) (renderFunc, error) {
	switch shell {
	case "bash", "zsh":
		return posixFunction, nil
	case "fish":
		return fishFunction, nil
	default:
		return nil, fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
}

func header(program, binary string, src shim.Source, timestamp string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "    # Shim for %s\n", program)
	fmt.Fprintf(&b, "    # Created automatically by %s\n", binary)
	if src.Path != "" {
		fmt.Fprintf(&b, "    #    from shim file %s\n", src.Path)
	}
	if src.Fingerprint != "" {
		fmt.Fprintf(&b, "    #    blake3 %s\n", src.Fingerprint)
	}
	fmt.Fprintf(&b, "    #    at %s\n", timestamp)
	return b.String()
}

func posixFunction(program, header, binary string) string {
	return fmt.Sprintf("%s() {\n%s    %s exec -- %s \"$@\"\n}\n", program, header, binary, program)
}

func fishFunction(program, header, binary string) string {
	return fmt.Sprintf("function %s --wraps=%s\n%s    %s exec -- %s $argv\nend\n", program, program, header, binary, program)
}

// quote wraps s in single quotes when it contains characters the shell
// would interpret.
func quote(s string) string {
	if s != "" && strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("/._-+:@%=,", r):
		return false
	}
	return true
}
