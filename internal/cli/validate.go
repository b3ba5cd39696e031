package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/storybuilder/internal/logging"
	"github.com/aretw0/storybuilder/internal/validator"
	"github.com/aretw0/storybuilder/pkg/domain"
)

// ErrInvalidStory is returned by RunValidate when the graph has issues.
var ErrInvalidStory = errors.New("story graph is invalid")

// RunValidate loads the story leniently and reports every validation issue.
// opts.JSON switches the report to JSON.
func RunValidate(opts Options, out io.Writer) error {
	opts.Lenient = true
	engine, err := NewEngine(opts, logging.NewNop())
	if err != nil {
		return err
	}

	var vopts []domain.ValidateOption
	if opts.MaxChoices > 0 {
		vopts = append(vopts, domain.WithMaxChoices(opts.MaxChoices))
	}
	report := validator.NewReport(engine.Name, engine.Graph(), vopts...)

	if opts.JSON {
		if err := report.WriteJSON(out); err != nil {
			return err
		}
	} else {
		report.WriteText(out)
	}

	if !report.OK() {
		return fmt.Errorf("%w: %d issue(s)", ErrInvalidStory, len(report.Issues))
	}
	return nil
}
