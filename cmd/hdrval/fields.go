package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpval/header"
)

type field struct {
	name   string
	values []string
}

// readFields reads "Name: value" lines and groups the values by header name
// in the order the names first appear. Folded lines are joined with a single space.
// A blank line ends the header section.
func readFields(r io.Reader) ([]*field, error) {
	var (
		fields []*field
		last   *field
		byName = make(map[header.Name]*field)
	)

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if last != nil {
				break
			}
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if last == nil {
				return nil, errtrace.Wrap(fmt.Errorf("line %d: continuation without a field: %w", n, header.ErrMalformedInput))
			}
			i := len(last.values) - 1
			last.values[i] = strings.TrimSpace(last.values[i] + " " + strings.TrimSpace(line))
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errtrace.Wrap(fmt.Errorf("line %d: missing ':': %w", n, header.ErrMalformedInput))
		}

		key := header.CanonicName(name)
		f := byName[key]
		if f == nil {
			f = &field{name: name}
			byName[key] = f
			fields = append(fields, f)
		}
		f.values = append(f.values, strings.TrimSpace(value))
		last = f
	}
	return fields, errtrace.Wrap(sc.Err())
}
