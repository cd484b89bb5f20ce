package strokes

import (
	"bufio"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mingpan/mingpan/internal/domain"
)

// ParseCharCodes reads "<code>\t<unicode hex>" lines into a character -> reference code map.
// Comment, blank and malformed lines are skipped; the latter are logged.
func ParseCharCodes(r io.Reader, log *slog.Logger) (map[rune]string, error) {
	out := make(map[rune]string)
	err := scanFields(r, func(lineNo int, fields []string) {
		code := strings.TrimSpace(fields[0])
		hex, ok := normalizeHex(fields[1])
		if !ok {
			log.Warn("strokes.parse.bad_codepoint", "line", lineNo, "value", fields[1])
			return
		}
		cp, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(cp)) {
			log.Warn("strokes.parse.bad_codepoint", "line", lineNo, "value", fields[1])
			return
		}
		out[rune(cp)] = code
	}, log)
	return out, err
}

// ParseCodeStrokes reads "<code>\t<strokes>" lines into a reference code -> stroke count map.
func ParseCodeStrokes(r io.Reader, log *slog.Logger) (map[string]int, error) {
	out := make(map[string]int)
	err := scanFields(r, func(lineNo int, fields []string) {
		n, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || n < 0 {
			log.Warn("strokes.parse.bad_count", "line", lineNo, "code", fields[0], "value", fields[1])
			return
		}
		out[strings.TrimSpace(fields[0])] = n
	}, log)
	return out, err
}

// Join maps every character to the stroke count of its code, or UnknownStrokes
// when the code has no entry.
func Join(charCodes map[rune]string, codeStrokes map[string]int) domain.StrokeTable {
	out := make(domain.StrokeTable, len(charCodes))
	for ch, code := range charCodes {
		n, ok := codeStrokes[code]
		if !ok {
			n = domain.UnknownStrokes
		}
		out[ch] = n
	}
	return out
}

func scanFields(r io.Reader, fn func(lineNo int, fields []string), log *slog.Logger) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			fields = strings.Fields(line)
		}
		if len(fields) < 2 {
			log.Warn("strokes.parse.short_line", "line", lineNo)
			continue
		}
		fn(lineNo, fields)
	}
	return sc.Err()
}

func normalizeHex(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "U+")
	s = strings.TrimPrefix(s, "0X")
	if s == "" {
		return "", false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return "", false
		}
	}
	return s, true
}
