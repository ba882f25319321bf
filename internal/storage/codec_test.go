package storage

import (
	"strconv"
	"testing"
)

type pair struct {
	Key string
	N   int
}

func pairCodec(sep string) Codec[pair] {
	return Codec[pair]{
		Separator: sep,
		Arity:     2,
		Encode: func(p pair) []string {
			return []string{p.Key, strconv.Itoa(p.N)}
		},
		Decode: func(fields []string) (pair, error) {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return pair{}, err
			}
			return pair{Key: fields[0], N: n}, nil
		},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	codec := pairCodec(",")
	want := pair{Key: "alpha", N: 42}

	line, err := codec.EncodeLine(want)
	if err != nil {
		t.Fatalf("EncodeLine: %v", err)
	}
	got, err := codec.DecodeLine(line)
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestCodecDecodeSkips(t *testing.T) {
	codec := pairCodec(",")
	tests := []struct {
		name string
		line string
	}{
		{name: "blank", line: ""},
		{name: "whitespace", line: "   "},
		{name: "comment", line: "# id,count"},
		{name: "indented comment", line: "  # note"},
		{name: "too few fields", line: "alpha"},
		{name: "bad value", line: "alpha,notanumber"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.DecodeLine(tt.line); !IsSkip(err) {
				t.Errorf("DecodeLine(%q) err = %v, want skip", tt.line, err)
			}
		})
	}
}

func TestCodecDecodeNeverPanics(t *testing.T) {
	codec := pairCodec("|")
	for _, line := range []string{"|", "|||", "a|b|c|d", "\x00|\xff"} {
		if _, err := codec.DecodeLine(line); err == nil {
			continue // extra fields beyond arity are tolerated
		}
	}
}

func TestCodecEncodeRejectsSeparator(t *testing.T) {
	codec := pairCodec(",")
	if _, err := codec.EncodeLine(pair{Key: "a,b", N: 1}); err == nil {
		t.Fatal("EncodeLine accepted a field containing the separator")
	}
	if _, err := codec.EncodeLine(pair{Key: "a\nb", N: 1}); err == nil {
		t.Fatal("EncodeLine accepted a field containing a line break")
	}
}

func TestCodecSeparatorIsPerTable(t *testing.T) {
	comma := pairCodec(",")
	pipe := pairCodec("|")

	line, err := pipe.EncodeLine(pair{Key: "with,comma", N: 7})
	if err != nil {
		t.Fatalf("pipe EncodeLine: %v", err)
	}
	got, err := pipe.DecodeLine(line)
	if err != nil {
		t.Fatalf("pipe DecodeLine: %v", err)
	}
	if got.Key != "with,comma" {
		t.Errorf("pipe round trip key = %q", got.Key)
	}
	if _, err := comma.DecodeLine(line); !IsSkip(err) {
		t.Errorf("comma codec should skip a pipe line, got %v", err)
	}
}
