package text2map

import (
	"errors"
	"testing"
)

type fakePages struct {
	texts  []string
	errs   map[int]error
	panics map[int]bool
}

func (f fakePages) NumPage() int { return len(f.texts) }

func (f fakePages) PageText(n int) (string, error) {
	if f.panics[n] {
		panic("broken page")
	}
	if err := f.errs[n]; err != nil {
		return "", err
	}
	return f.texts[n-1], nil
}

func TestJoinPages(t *testing.T) {
	tests := []struct {
		name string
		src  fakePages
		want string
	}{
		{
			name: "all pages",
			src:  fakePages{texts: []string{"one", "two"}},
			want: "one\n\ntwo",
		},
		{
			name: "failing page skipped",
			src: fakePages{
				texts: []string{"one", "", "three", "four"},
				errs:  map[int]error{2: errors.New("bad content stream")},
			},
			want: "one\n\nthree\n\nfour",
		},
		{
			name: "panicking page skipped",
			src: fakePages{
				texts:  []string{"one", "two"},
				panics: map[int]bool{1: true},
			},
			want: "two",
		},
		{
			name: "blank pages dropped and trimmed",
			src:  fakePages{texts: []string{"  ", "\n text \n", ""}},
			want: "text",
		},
		{
			name: "nothing readable",
			src: fakePages{
				texts: []string{"a"},
				errs:  map[int]error{1: errors.New("x")},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinPages(tt.src, discardLogger()); got != tt.want {
				t.Errorf("joinPages() = %q, want %q", got, tt.want)
			}
		})
	}
}
