package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/immune-gmbh/fwrelease/pkg/commands"
	"github.com/immune-gmbh/fwrelease/pkg/espimage"
	"github.com/immune-gmbh/fwrelease/pkg/types"
)

// Command is the implementation of `commands.Command`.
type Command struct {
	isRawApp bool
}

// Usage prints the syntax of arguments for this command
func (cmd Command) Usage() string {
	return "<path to the merged binary>"
}

// Description explains what this verb commands to do
func (cmd Command) Description() string {
	return "display the chip, flash size, segments and application info of a firmware image"
}

// SetupFlagSet is called to allow the command implementation
// to setup which option flags it has.
func (cmd *Command) SetupFlagSet(flagSet *pflag.FlagSet, cfg commands.Config) {
	flagSet.BoolVar(&cmd.isRawApp, "raw-app", false, "the file is an application image, not a merged binary")
}

type segmentInfo struct {
	LoadAddress string `json:"load_address"`
	Offset      int    `json:"offset"`
	Size        int    `json:"size"`
}

type imageInfo struct {
	ChipID      espimage.ChipID    `json:"chip_id"`
	FlashSize   espimage.FlashSize `json:"flash_size"`
	ImageSize   int                `json:"image_size"`
	ArtifactID  string             `json:"artifact_id"`
	Segments    []segmentInfo      `json:"segments"`
	Application *types.Application `json:"application,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
func (cmd Command) Execute(ctx context.Context, cfg commands.Config, args []string) error {
	if len(args) < 1 {
		return commands.ErrArgs{Err: fmt.Errorf("no path to the image was specified")}
	}
	if len(args) > 1 {
		return commands.ErrArgs{Err: fmt.Errorf("too many parameters")}
	}
	imagePath := args[0]

	b, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("unable to read image '%s': %w", imagePath, err)
	}
	if !cmd.isRawApp {
		b = espimage.AppRegion(b)
	}

	img, err := espimage.Parse(b)
	if err != nil {
		return fmt.Errorf("unable to parse image '%s': %w", imagePath, err)
	}

	info := imageInfo{
		ChipID:     img.ChipID,
		FlashSize:  img.FlashSize,
		ImageSize:  img.Size,
		ArtifactID: types.NewArtifactID(b).String(),
	}
	for _, segment := range img.Segments {
		info.Segments = append(info.Segments, segmentInfo{
			LoadAddress: fmt.Sprintf("0x%08X", segment.LoadAddress),
			Offset:      segment.Offset,
			Size:        len(segment.Data),
		})
	}
	desc, descErr := img.AppDescriptor()
	if descErr != nil {
		info.Error = descErr.Error()
	} else {
		app := types.NewApplication(desc)
		info.Application = &app
	}

	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to serialize the image info: %w", err)
	}
	fmt.Printf("%s\n", out)
	if descErr != nil {
		// already printed as a part of the info
		return commands.SilentError{Err: descErr}
	}
	return nil
}
