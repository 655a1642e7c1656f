package lexical

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "lowercases and splits punctuation",
			in:   "Machine-Learning, Algorithms!",
			want: []string{"machine", "learning", "algorithms"},
		},
		{
			name: "drops stop words",
			in:   "the quick fox and the lazy dog",
			want: []string{"quick", "fox", "lazy", "dog"},
		},
		{
			name: "drops single characters",
			in:   "a b c go",
			want: []string{"go"},
		},
		{
			name: "keeps digits",
			in:   "http2 protocol rfc 9113",
			want: []string{"http2", "protocol", "rfc", "9113"},
		},
		{
			name: "only stop words",
			in:   "the and of",
			want: []string{},
		},
		{
			name: "empty",
			in:   "",
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenize(tc.in)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDistinctTokens(t *testing.T) {
	got := distinctTokens("learning machine learning deep learning")
	want := []string{"learning", "machine", "deep"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("distinctTokens = %v, want %v", got, want)
	}
}
