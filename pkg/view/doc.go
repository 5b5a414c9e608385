// Package view provides conduit renderers.
//
// A conduit app renders the view "subsystems/{subsystem}/views/{controller}/{method}"
// after its hooks finish. This package resolves those ids two ways:
//
//   - [Components] maps ids to templ components.
//   - [Templates] loads "<id>.html" from an fs.FS with html/template,
//     optionally wrapped in a shared layout.
//
// [Chain] combines them; each renderer reports [ErrNotFound] for ids it
// does not know and the next one is tried:
//
//	renderer := view.Chain{
//	    errorPages,
//	    view.NewTemplates(assets.Views, view.WithLayout("layout.html")),
//	}
//	app, err := conduit.New(conduit.WithRenderer(renderer))
package view
