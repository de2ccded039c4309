package procscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() Record {
	return Record{
		PID:       42,
		ParentPID: 1,
		Name:      "nginx",
		Args:      []string{"nginx", "-g"},
		Cmdline:   "nginx -g",
		Cwd:       "/srv",
		Env:       map[string]string{"MODE": "prod"},
	}
}

func TestCompileFilterRejectsBrokenExpressions(t *testing.T) {
	_, err := CompileFilter("pid +")
	assert.Error(t, err)

	// well formed but not boolean
	_, err = CompileFilter("name")
	assert.Error(t, err)

	_, err = CompileFilter("no_such_field == 1")
	assert.Error(t, err)
}

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{`pid == 42`, true},
		{`pid == 43`, false},
		{`ppid == 1`, true},
		{`name == "nginx"`, true},
		{`name startsWith "ng"`, true},
		{`cmdline contains "-g"`, true},
		{`cwd == "/srv"`, true},
		{`len(args) == 2 && args[1] == "-g"`, true},
		{`"MODE" in env`, true},
		{`"OTHER" in env`, false},
		{`env["MODE"] == "prod"`, true},
		{`name == "nginx" && pid > 100`, false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := CompileFilter(tt.expr)
			require.NoError(t, err)

			got, err := f.Match(sampleRecord())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterMatchZeroRecord(t *testing.T) {
	f, err := CompileFilter(`name == "" && len(args) == 0`)
	require.NoError(t, err)

	got, err := f.Match(Record{PID: 7})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestFilterApply(t *testing.T) {
	records := []Record{
		sampleRecord(),
		{PID: 77, Name: "redis", Env: map[string]string{}},
	}

	f, err := CompileFilter(`name == "nginx"`)
	require.NoError(t, err)

	kept, err := f.Apply(records)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, uint32(42), kept[0].PID)
}
