package kicadlib

import (
	"embed"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/kicadlib/pkg/cobrax/topics"
	"github.com/arthur-debert/kicadlib/pkg/ui"
)

//go:embed topics/*.md
var topicFiles embed.FS

// installTopics adds "kicadlib help <topic>" for the embedded topics
func installTopics(rootCmd *cobra.Command) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	tm, err := topics.New(sub, topics.Options{
		Extensions: []string{".md"},
		Renderer: topics.RendererFunc(func(content, format string) string {
			if format != ".md" || !styledHelp() {
				return content
			}
			return ui.RenderMarkdown(content, 0)
		}),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	tm.Install(rootCmd)
}
