package fetch

import (
	"strconv"
	"strings"

	"github.com/oleiade/gomme"
)

// EventKind tags a parsed line of yt-dlp output.
type EventKind int

const (
	// EventProgress is a "[download] N% of SIZE at SPEED ETA T" update.
	EventProgress EventKind = iota
	// EventDestination reports the file a stage writes to.
	EventDestination
	// EventMerged reports the merge target of the mux stage.
	EventMerged
)

// Event is one parsed line of the downloader's streamed output.
type Event struct {
	Kind      EventKind
	Percent   float64
	TotalSize string
	Speed     string
	ETA       string
	Path      string
}

type parserResult = gomme.Result[Event, string]

// ParseLine interprets a line of yt-dlp --newline output. Lines that carry
// neither progress nor a destination return ok=false and are skipped.
func ParseLine(line string) (Event, bool) {
	result := gomme.Alternative(
		parseProgress,
		parseDestination,
		parseMerged,
	)(line)
	if result.Err != nil {
		return Event{}, false
	}
	return result.Output, true
}

// parseProgress handles lines like
// "[download]  42.1% of ~10.00MiB at 1.20MiB/s ETA 00:05".
func parseProgress(input string) parserResult {
	percent := gomme.Preceded(
		gomme.Token[string]("[download]"),
		gomme.Preceded(
			spaces(),
			gomme.Terminated(decimal(), gomme.Char[string]('%')),
		),
	)

	field := func(keyword string) gomme.Parser[string, string] {
		return gomme.Map(
			gomme.Optional(
				gomme.Preceded(
					gomme.Pair(spaces(), gomme.Token[string](keyword+" ")),
					word(),
				),
			),
			func(s string) (string, error) {
				return strings.TrimPrefix(s, "~"), nil
			},
		)
	}

	return gomme.Map(
		gomme.Pair(
			percent,
			gomme.Pair(
				field("of"),
				gomme.Pair(field("at"), field("ETA")),
			),
		),
		func(p gomme.PairContainer[float64, gomme.PairContainer[string, gomme.PairContainer[string, string]]]) (Event, error) {
			return Event{
				Kind:      EventProgress,
				Percent:   p.Left,
				TotalSize: p.Right.Left,
				Speed:     p.Right.Right.Left,
				ETA:       p.Right.Right.Right,
			}, nil
		},
	)(input)
}

// parseDestination handles "[download] Destination: PATH" and
// "[ExtractAudio] Destination: PATH".
func parseDestination(input string) parserResult {
	return gomme.Map(
		gomme.Preceded(
			gomme.Pair(
				gomme.Alternative(
					gomme.Token[string]("[download]"),
					gomme.Token[string]("[ExtractAudio]"),
				),
				gomme.Token[string](" Destination: "),
			),
			rest(),
		),
		func(path string) (Event, error) {
			return Event{Kind: EventDestination, Path: path}, nil
		},
	)(input)
}

// parseMerged handles `[Merger] Merging formats into "PATH"`.
func parseMerged(input string) parserResult {
	return gomme.Map(
		gomme.Preceded(
			gomme.Token[string](`[Merger] Merging formats into "`),
			rest(),
		),
		func(path string) (Event, error) {
			return Event{
				Kind: EventMerged,
				Path: strings.TrimSuffix(path, `"`),
			}, nil
		},
	)(input)
}

func spaces() gomme.Parser[string, string] {
	return gomme.Whitespace0[string]()
}

// decimal parses "42" or "42.1" into a float64.
func decimal() gomme.Parser[string, float64] {
	return func(input string) gomme.Result[float64, string] {
		i := 0
		seenDot := false
		for i < len(input) {
			c := input[i]
			if c >= '0' && c <= '9' {
				i++
				continue
			}
			if c == '.' && !seenDot && i > 0 {
				seenDot = true
				i++
				continue
			}
			break
		}
		if i == 0 {
			return gomme.Failure[string, float64](gomme.NewError(input, "decimal"), input)
		}
		f, err := strconv.ParseFloat(input[:i], 64)
		if err != nil {
			return gomme.Failure[string, float64](gomme.NewError(input, "decimal"), input)
		}
		return gomme.Success(f, input[i:])
	}
}

// word consumes characters up to the next space.
func word() gomme.Parser[string, string] {
	return func(input string) gomme.Result[string, string] {
		i := strings.IndexByte(input, ' ')
		if i == -1 {
			i = len(input)
		}
		if i == 0 {
			return gomme.Failure[string, string](gomme.NewError(input, "word"), input)
		}
		return gomme.Success(input[:i], input[i:])
	}
}

// rest consumes the remainder of the line.
func rest() gomme.Parser[string, string] {
	return func(input string) gomme.Result[string, string] {
		if len(input) == 0 {
			return gomme.Failure[string, string](gomme.NewError(input, "rest"), input)
		}
		return gomme.Success(input, input[len(input):])
	}
}
