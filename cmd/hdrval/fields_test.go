package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghettovoice/httpval/header"
)

func TestReadFields(t *testing.T) {
	t.Parallel()

	in := "\r\n" +
		"Transfer-Encoding: gzip\r\n" +
		"X-Custom:  a \r\n" +
		"  b\r\n" +
		"transfer-encoding: chunked\r\n" +
		"\r\n" +
		"X-Ignored: body\r\n"

	fields, err := readFields(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, fields, 2)

	assert.Equal(t, "Transfer-Encoding", fields[0].name)
	assert.Equal(t, []string{"gzip", "chunked"}, fields[0].values)
	assert.Equal(t, "X-Custom", fields[1].name)
	assert.Equal(t, []string{"a b"}, fields[1].values)
}

func TestReadFields_Errors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"no colon\n",
		" leading continuation\nX-Custom: a\n",
	} {
		_, err := readFields(strings.NewReader(in))
		assert.ErrorIs(t, err, header.ErrMalformedInput, "input %q", in)
	}

	fields, err := readFields(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, fields)
}
