package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Components maps view ids to templ component constructors.
//
//	view.Components{
//	    "subsystems/common/views/error/notfound": func(data map[string]any) templ.Component {
//	        return pages.NotFound(data["title"].(string))
//	    },
//	}
type Components map[string]func(data map[string]any) templ.Component

func (c Components) Render(ctx context.Context, w io.Writer, id string, data map[string]any) error {
	build, ok := c[id]
	if !ok {
		return notFound(id)
	}
	return build(data).Render(ctx, w)
}
