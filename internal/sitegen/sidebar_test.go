package sitegen_test

import (
	"reflect"
	"testing"

	"github.com/texkit/go-tex2web/internal/sitegen"
)

func TestExtractSidebar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		want     []sitegen.SidebarEntry
	}{
		{
			name: "chapter and section headings",
			markdown: `# Sets

intro

## Unions

### Too deep

## Intersections
`,
			want: []sitegen.SidebarEntry{
				{Text: "Sets", Level: 1},
				{Text: "Unions", Level: 2},
				{Text: "Intersections", Level: 2},
			},
		},
		{
			name:     "math markup stripped from titles",
			markdown: "# The set $A \\cup B$ and x_1^2\n",
			want: []sitegen.SidebarEntry{
				{Text: "The set A cup B and x12", Level: 1},
			},
		},
		{
			name:     "no headings",
			markdown: "just prose\n\nmore prose\n",
			want:     nil,
		},
		{
			name:     "heading reduced to nothing is dropped",
			markdown: "# $$\n\nbody\n",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sitegen.ExtractSidebar([]byte(tt.markdown))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractSidebar() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
