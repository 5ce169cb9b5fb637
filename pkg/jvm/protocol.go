package jvm

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// response is one line written by the bridge.
type response struct {
	ID     int64      `json:"id"`
	OK     bool       `json:"ok"`
	Null   bool       `json:"null"`
	Value  string     `json:"value"`
	Output string     `json:"output"`
	Error  *wireError `json:"error,omitempty"`
}

type wireError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Trace   string `json:"trace"`
}

// encodeRequest renders a call as a single tab-separated request line.
func encodeRequest(id int64, c Call) (string, error) {
	if c.Class == "" || c.Method == "" {
		return "", fmt.Errorf("jvm: call needs class and method, got %q.%q", c.Class, c.Method)
	}
	if strings.ContainsAny(c.Class+c.Method, "\t\r\n") {
		return "", fmt.Errorf("jvm: invalid characters in %s.%s", c.Class, c.Method)
	}

	var b strings.Builder
	b.WriteString(strconv.FormatInt(id, 10))
	b.WriteByte('\t')
	b.WriteString(c.Class)
	b.WriteByte('\t')
	b.WriteString(c.Method)
	for i, a := range c.Args {
		b.WriteByte('\t')
		switch a.Kind {
		case ArgString:
			b.WriteString("s:")
			b.WriteString(url.QueryEscape(a.Str))
		case ArgInt:
			if a.Int < math.MinInt32 || a.Int > math.MaxInt32 {
				return "", fmt.Errorf("jvm: argument %d (%d) does not fit a Java int", i, a.Int)
			}
			b.WriteString("i:")
			b.WriteString(strconv.Itoa(a.Int))
		default:
			return "", fmt.Errorf("jvm: argument %d has unknown kind %d", i, a.Kind)
		}
	}
	b.WriteByte('\n')
	return b.String(), nil
}

// decodeRequest parses a request line. The bridge does this in Java; the Go
// version backs the test bridge and keeps both sides honest.
func decodeRequest(line string) (int64, Call, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) < 3 {
		return 0, Call{}, fmt.Errorf("jvm: malformed request %q", line)
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, Call{}, fmt.Errorf("jvm: malformed request id: %w", err)
	}

	call := Call{Class: fields[1], Method: fields[2]}
	for _, f := range fields[3:] {
		switch {
		case strings.HasPrefix(f, "s:"):
			s, err := url.QueryUnescape(f[2:])
			if err != nil {
				return 0, Call{}, fmt.Errorf("jvm: malformed string argument: %w", err)
			}
			call.Args = append(call.Args, StringArg(s))
		case strings.HasPrefix(f, "i:"):
			n, err := strconv.Atoi(f[2:])
			if err != nil {
				return 0, Call{}, fmt.Errorf("jvm: malformed int argument: %w", err)
			}
			call.Args = append(call.Args, IntArg(n))
		default:
			return 0, Call{}, fmt.Errorf("jvm: unknown argument encoding %q", f)
		}
	}
	return id, call, nil
}

func decodeResponse(line []byte) (response, error) {
	var r response
	if err := json.Unmarshal(line, &r); err != nil {
		return response{}, fmt.Errorf("jvm: malformed response: %w", err)
	}
	return r, nil
}
