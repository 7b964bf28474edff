package commands

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/minepkg/mclaunch/internals/merrors"
)

// CliError is an error with instructions for the player
type CliError struct {
	Text string
	// Kind is one of the merrors kinds, if the error came from the launcher
	Kind        error
	Suggestions []string
	Help        string
}

func (e *CliError) Error() string {
	return e.Text
}

// kindHints are shown for launcher errors that were not wrapped in a CliError
var kindHints = map[error]CliError{
	merrors.ErrManifestFetch: {
		Help:        "The version list could not be downloaded from Mojang.",
		Suggestions: []string{"Check your internet connection", `Check the "manifestURL" config key`},
	},
	merrors.ErrVersionNotFound: {
		Help:        "Mojang does not know this version.",
		Suggestions: []string{`Run "mclaunch versions --type all" to list every version`, "Pass another version with -m"},
	},
	merrors.ErrMetadataFetch: {
		Help:        "The version.json of this version could not be downloaded.",
		Suggestions: []string{"Check your internet connection", "Try again later"},
	},
	merrors.ErrMalformedMetadata: {
		Help:        "Mojang served metadata mclaunch does not understand.",
		Suggestions: []string{`Run "mclaunch clean --all" and try again`},
	},
	merrors.ErrAssetIndex: {
		Help:        "The asset index could not be loaded. Minecraft starts without sounds and translations.",
		Suggestions: []string{`Check the "resourcesURL" config key`, "Use --fast to skip assets"},
	},
	merrors.ErrLaunchSpawn: {
		Help:        "Java could not be started.",
		Suggestions: []string{"Install java", `Point the "java" config key to your java binary: mclaunch config set java /path/to/java`},
	},
	merrors.ErrUnsupportedPlatform: {
		Help:        "There are no native libraries for this operating system.",
		Suggestions: []string{"mclaunch supports windows and linux"},
	},
}

// FromKind turns a launcher error into a CliError with hints for its kind.
// It returns nil for errors of unknown kinds
func FromKind(err error) *CliError {
	kind := merrors.KindOf(err)
	if kind == nil {
		return nil
	}
	cliErr := &CliError{Text: err.Error(), Kind: kind}
	if hint, ok := kindHints[kind]; ok {
		cliErr.Help = hint.Help
		cliErr.Suggestions = hint.Suggestions
	}
	return cliErr
}

func (e *CliError) RichError() string {
	rendered := ErrorBox(e.Text, e.Help)
	if len(e.Suggestions) == 0 {
		return rendered
	}

	title := "Suggestion:"
	if len(e.Suggestions) > 1 {
		title = "Suggestions:"
	}
	var b strings.Builder
	b.WriteString(Emoji("📎 ") + title + "\n")
	for _, s := range e.Suggestions {
		b.WriteString(" ⦁ " + s + "\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered, styleHelpBox.Render(b.String()))
}
