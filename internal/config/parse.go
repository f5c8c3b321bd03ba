// internal/config/parse.go
package config

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
)

// parseState is the state of the directive lexer.
type parseState int

const (
	stateStart parseState = iota
	stateVarName
	stateWhitespace
	stateNumericValue
	stateFileNameValue
	stateComment
	stateDone
)

func (s parseState) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateVarName:
		return "var_name"
	case stateWhitespace:
		return "whitespace"
	case stateNumericValue:
		return "numeric_value"
	case stateFileNameValue:
		return "file_name_value"
	case stateComment:
		return "comment"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Parse reads KEY = VALUE directives from r and returns a fully populated
// RunConfig. A nil source yields Default(). Malformed input never produces
// an error: unknown keys, stray punctuation and broken values are skipped
// and the affected fields keep their defaults.
func Parse(r io.Reader) RunConfig {
	if r == nil {
		return Default()
	}

	p := &parser{}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		p.line(sc.Bytes())
	}
	// A read error ends input early; whatever was committed so far stands.

	p.state = stateDone
	return p.finalize()
}

// ParseFile opens path and parses it.
// The only error is failing to open the file.
func ParseFile(path string) (RunConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return Default(), fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f), nil
}

// parser holds lexer state plus the values committed so far.
// Zero values mean "unset" and are replaced during finalize.
type parser struct {
	state parseState

	key       []byte // key token being collected
	activeKey string // key the next value binds to
	gotEquals bool   // pending assignment marker

	num      int
	overflow bool
	file     []byte

	timeout   int
	runLength int
	logFile   string
	distFile  string
	soundFile string
	report    string
}

// line runs one directive line through the state machine.
// Every line starts from Start with no key and no pending assignment.
func (p *parser) line(b []byte) {
	p.state = stateStart
	p.key = p.key[:0]
	p.activeKey = ""
	p.gotEquals = false

	for _, c := range b {
		if p.step(c) {
			return
		}
	}
	p.step('\n')
}

// step consumes one character. It returns true when the rest of the line
// must be skipped.
func (p *parser) step(c byte) bool {
	switch p.state {
	case stateStart:
		switch {
		case c == '#':
			p.state = stateComment
		case isSpace(c):
			p.state = stateWhitespace
		case isKeyStart(c):
			p.state = stateVarName
			p.key = append(p.key[:0], c)
		}
		// anything else is stray punctuation: stay in Start

	case stateVarName:
		if isKeyChar(c) {
			p.key = append(p.key, c)
			return false
		}
		p.activeKey = string(p.key)
		p.key = p.key[:0]

		switch {
		case isSpace(c):
			p.state = stateWhitespace
		case c == '#':
			p.state = stateComment
		case c == '=':
			p.gotEquals = true
			p.state = stateWhitespace
		default:
			// "KEY!" is not a key
			p.activeKey = ""
			p.state = stateWhitespace
		}

	case stateWhitespace:
		switch {
		case c == '#':
			p.state = stateComment
		case c == '=':
			p.gotEquals = true
		case isSpace(c):
		case p.gotEquals && isDigit(c):
			p.state = stateNumericValue
			p.num = 0
			p.overflow = false
			return p.step(c)
		case p.gotEquals && isFileStart(c):
			p.state = stateFileNameValue
			p.file = p.file[:0]
			return p.step(c)
		case !p.gotEquals && isKeyStart(c):
			p.state = stateVarName
			p.key = append(p.key[:0], c)
		}

	case stateNumericValue:
		if isDigit(c) {
			d := int(c - '0')
			if p.num > (math.MaxInt32-d)/10 {
				p.overflow = true
			} else {
				p.num = p.num*10 + d
			}
			return false
		}

		clean := isSpace(c) || c == '#'
		if clean && !p.overflow {
			p.commitNumber(p.activeKey, p.num)
		}
		p.activeKey = ""
		p.gotEquals = false

		switch {
		case c == '#':
			p.state = stateComment
		case clean:
			p.state = stateWhitespace
		default:
			// "12abc": drop the value and the rest of the line
			return true
		}

	case stateFileNameValue:
		if !isSpace(c) && c != '#' {
			p.file = append(p.file, c)
			return false
		}
		p.commitPath(p.activeKey, string(p.file))
		p.activeKey = ""
		p.gotEquals = false
		return true

	case stateComment:
		if c == '#' || c == '\n' {
			p.state = stateWhitespace
		}

	case stateDone:
		return true
	}

	return false
}

func (p *parser) commitNumber(key string, v int) {
	switch key {
	case KeyWatchdogTimeout:
		p.timeout = v
	case KeyRunLength:
		p.runLength = v
	}
}

func (p *parser) commitPath(key, v string) {
	if v == "" {
		return
	}
	switch key {
	case KeyLogFile:
		p.logFile = v
	case KeyDistanceLogFile:
		p.distFile = v
	case KeySoundLogFile:
		p.soundFile = v
	case KeyReportFile:
		p.report = v
	}
}

// finalize applies "unset => default" to every field.
func (p *parser) finalize() RunConfig {
	cfg := RunConfig{
		WatchdogTimeout: p.timeout,
		RunLength:       p.runLength,
		LogFile:         p.logFile,
		DistanceLogFile: p.distFile,
		SoundLogFile:    p.soundFile,
		ReportFile:      p.report,
	}

	def := Default()
	if cfg.WatchdogTimeout == 0 {
		cfg.WatchdogTimeout = def.WatchdogTimeout
	}
	if cfg.RunLength == 0 {
		cfg.RunLength = def.RunLength
	}
	if cfg.LogFile == "" {
		cfg.LogFile = def.LogFile
	}
	if cfg.DistanceLogFile == "" {
		cfg.DistanceLogFile = def.DistanceLogFile
	}
	if cfg.SoundLogFile == "" {
		cfg.SoundLogFile = def.SoundLogFile
	}
	if cfg.ReportFile == "" {
		cfg.ReportFile = def.ReportFile
	}
	return cfg
}

// ---- character classes ----

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isKeyStart(c byte) bool {
	return isLetter(c) || c == '_'
}

func isKeyChar(c byte) bool {
	return isKeyStart(c) || isDigit(c)
}

func isFileStart(c byte) bool {
	return isLetter(c) || c == '/' || c == '.' || c == ':'
}
