package deepzoom

import (
	"bytes"
	"context"
	"html/template"
	"path"

	"github.com/bodgit/deepzoom/descriptor"
	"github.com/bodgit/deepzoom/sink"
)

const openSeadragon = "https://cdnjs.cloudflare.com/ajax/libs/openseadragon/4.1.0/"

var viewerTemplate = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <script src="{{.Base}}openseadragon.min.js"></script>
    <style>
        body { margin: 0; background: {{.Background}}; }
        #viewer { width: 100vw; height: 100vh; }
    </style>
</head>
<body>
    <div id="viewer"></div>
    <script>
        OpenSeadragon({
            id: "viewer",
            prefixUrl: "{{.Base}}images/",
            tileSources: {{.Descriptor}},
            showNavigator: true
        });
    </script>
</body>
</html>
`))

// ViewerKey returns the key of the viewer page for the pyramid called name.
func ViewerKey(name string) string {
	return name + ".html"
}

// WriteViewer writes an OpenSeadragon page for the pyramid called name
// next to its descriptor.
func WriteViewer(ctx context.Context, s sink.Sink, name, background string) error {
	if background == "" {
		background = "#000000"
	}

	b := new(bytes.Buffer)
	if err := viewerTemplate.Execute(b, struct {
		Title      string
		Base       string
		Background template.CSS
		Descriptor string
	}{
		Title:      path.Base(name),
		Base:       openSeadragon,
		Background: template.CSS(background),
		Descriptor: path.Base(descriptor.Key(name)),
	}); err != nil {
		return err
	}

	return s.Put(ctx, ViewerKey(name), b.Bytes())
}
