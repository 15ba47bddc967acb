package cli

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"lsbmark/internal/imageio"
	"lsbmark/internal/logging"
	"lsbmark/pkg/config"
	"lsbmark/pkg/model"
	"lsbmark/pkg/report"
	"lsbmark/pkg/watermark"
	"path/filepath"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func ImageCommands(globals *GlobalOpts) *cobra.Command {
	imageCmd := &cobra.Command{
		Use:     "image",
		Short:   "Performs watermarking operations on images",
		Example: "lsbmark image encode --image source.png --output-file output.png --text \"(c) 2024 Jane Doe\"",
	}

	imageCmd.AddCommand(encodeImageCommand(globals), decodeImageCommand(globals), capacityCommand())
	return imageCmd
}

type encodeImageOpts struct {
	sourceImage    string
	outputImage    string
	text           string
	format         string
	pngCompression string
	reportPath     string
	reportDatabase string
	allowLossy     bool
}

// apply overlays the flags that were explicitly set onto wConfig
func (o encodeImageOpts) apply(cmd *cobra.Command, wConfig *config.WatermarkConfig) error {
	flags := cmd.Flags()
	if flags.Changed("png-compression") {
		level, err := config.ParsePngCompression(o.pngCompression)
		if err != nil {
			return err
		}
		wConfig.PngCompressionLevel = level
	}

	// An explicit format wins, then the output extension, then the configuration
	if flags.Changed("format") {
		format, err := config.ParseOutputFormat(o.format)
		if err != nil {
			return err
		}
		wConfig.OutputFormat = format
	} else {
		wConfig.OutputFormat = config.FormatFromPath(o.outputImage, wConfig.OutputFormat)
	}

	if flags.Changed("report") {
		wConfig.ReportPath = o.reportPath
	}
	if flags.Changed("report-db") {
		wConfig.ReportDatabase = o.reportDatabase
	}
	if flags.Changed("allow-lossy") {
		wConfig.AllowLossyOutput = o.allowLossy
	}
	return nil
}

func encodeImageCommand(globals *GlobalOpts) *cobra.Command {
	opts := encodeImageOpts{}

	encImgCmd := &cobra.Command{
		Use:     "encode",
		Example: "lsbmark image encode --image source.png --output-file output.png --text \"(c) 2024 Jane Doe\"",
		Short:   "Hide a text watermark in an image",
	}
	applyChannel := channelFlag(encImgCmd)

	encImgCmd.RunE = func(cmd *cobra.Command, args []string) error {
		wConfig := globals.Config
		if err := applyChannel(&wConfig); err != nil {
			return err
		}
		if err := opts.apply(cmd, &wConfig); err != nil {
			return err
		}
		return EncodeImageWithText(cmd, opts.sourceImage, opts.outputImage, opts.text, wConfig)
	}

	encImgCmd.Flags().StringVar(&opts.sourceImage, "image", "", "Image to hide the watermark in. It is never modified")
	encImgCmd.Flags().StringVar(&opts.outputImage, "output-file", "", "Name for the watermarked image that will be generated")
	encImgCmd.Flags().StringVar(&opts.text, "text", "", "Watermark text. Every character must be in the 1-255 range")
	encImgCmd.Flags().StringVar(&opts.format, "format", "png", "Output format. Options are png, bmp, tiff, jpeg. Defaults to the output file extension")
	encImgCmd.Flags().StringVar(&opts.pngCompression, "png-compression", "default", "Compression for output png. Options are default, none, fast, best")
	encImgCmd.Flags().StringVar(&opts.reportPath, "report", config.DefaultReportPath, "File overwritten with a report after every encode, .json files get a JSON report. Empty disables it")
	encImgCmd.Flags().StringVar(&opts.reportDatabase, "report-db", "", "Sqlite database that keeps the last report as well")
	encImgCmd.Flags().BoolVar(&opts.allowLossy, "allow-lossy", false, "Allow lossy output formats, which will not preserve the watermark")

	MarkFlagsRequired(encImgCmd, "image", "output-file", "text")

	return encImgCmd
}

// EncodeImageWithText watermarks the image at imageSourcePath and writes the result, followed by the report, to the
// sinks configured in wConfig
func EncodeImageWithText(cmd *cobra.Command, imageSourcePath, outputPath, text string, wConfig config.WatermarkConfig) error {
	logger := logging.BuildLogger()
	if wConfig.OutputFormat.Lossy() && wConfig.AllowLossyOutput {
		logger.Warn("Lossy output format selected, the watermark will not survive it", "format", wConfig.OutputFormat)
	}

	sink, closeSink, err := reportSink(cmd, wConfig)
	if err != nil {
		return err
	}
	defer closeSink()

	s := NewSpinner(cmd.ErrOrStderr())
	s.Prefix = "Encoding watermark "
	s.Start()
	stats, err := watermark.EncodeFile(cmd.Context(), imageSourcePath, outputPath, text, wConfig, sink)
	s.Stop()
	if err != nil {
		return err
	}

	logger.Debug("Encoded watermark",
		"setup", stats.Setup.String(),
		"data_encoding", stats.DataEncoding.String(),
		"output_image_encoding", stats.OutputImageEncoding.String(),
		"psnr", stats.PSNR,
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated %s with a %s character watermark\n", outputPath, humanize.Comma(int64(utf8.RuneCountInString(text))))
	fmt.Fprintf(out, "Used %s of %s available bits (%s)\n", humanize.Comma(int64(stats.PayloadBits)),
		humanize.Comma(int64(stats.CapacityBits)), humanize.FtoaWithDigits(100*float64(stats.PayloadBits)/float64(stats.CapacityBits), 2)+"%")
	if wConfig.ReportPath != "" {
		fmt.Fprintf(out, "Report written to %s\n", wConfig.ReportPath)
	}
	return nil
}

func reportSink(cmd *cobra.Command, wConfig config.WatermarkConfig) (report.Sink, func(), error) {
	var sinks report.MultiSink
	closeSink := func() {}

	if wConfig.ReportPath != "" {
		sinks = append(sinks, report.FileSink{Path: wConfig.ReportPath})
	}
	if wConfig.ReportDatabase != "" {
		dbSink, err := report.OpenSQLiteSink(cmd.Context(), wConfig.ReportDatabase)
		if err != nil {
			return nil, closeSink, err
		}
		sinks = append(sinks, dbSink)
		closeSink = func() {
			if err := dbSink.Close(); err != nil {
				logging.BuildLogger().WithError(err).Warn("Error closing report database")
			}
		}
	}

	if len(sinks) == 0 {
		return report.NopSink{}, closeSink, nil
	}
	return sinks, closeSink, nil
}

type decodeImageOpts struct {
	source     string
	jsonOutput bool
}

func decodeImageCommand(globals *GlobalOpts) *cobra.Command {
	opts := decodeImageOpts{}

	decodeCommand := &cobra.Command{
		Use:     "decode",
		Example: "lsbmark image decode --source watermarked.png",
		Short:   "Recover the text watermark hidden in an image",
		Long:    "Recover the text watermark hidden in an image. Exits with status 2 when the image carries no watermark",
	}
	applyChannel := channelFlag(decodeCommand)

	decodeCommand.RunE = func(cmd *cobra.Command, args []string) error {
		wConfig := globals.Config
		if err := applyChannel(&wConfig); err != nil {
			return err
		}
		return DecodeTextFromImage(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.source, opts.jsonOutput, wConfig)
	}

	decodeCommand.Flags().StringVar(&opts.source, "source", "", "Watermarked image to decode")
	decodeCommand.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the result as JSON")
	MarkFlagsRequired(decodeCommand, "source")

	return decodeCommand
}

type decodeOutput struct {
	model.DecodeResult
	Message string `json:"message,omitempty"`
}

// DecodeTextFromImage prints the watermark found in encodedImageFile. ErrNoWatermark is returned once the not found
// message has been printed
func DecodeTextFromImage(out, spinnerOut io.Writer, encodedImageFile string, jsonOutput bool, wConfig config.WatermarkConfig) error {
	s := NewSpinner(spinnerOut)
	s.Prefix = "Decoding watermark "
	s.Start()
	result, stats, err := watermark.DecodeFile(encodedImageFile, wConfig)
	s.Stop()
	if err != nil {
		return err
	}

	logging.BuildLogger().Debug("Decoded image", "data_decoding", stats.DataDecoding.String(), "scanned_bits", stats.ScannedBits)

	if jsonOutput {
		output := decodeOutput{DecodeResult: result}
		if !result.Found {
			output.Message = model.NotFoundMessage
		}
		if err = json.NewEncoder(out).Encode(output); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, result.String())
	}

	if !result.Found {
		return ErrNoWatermark
	}
	return nil
}

type capacityOpts struct {
	image string
	text  string
}

func capacityCommand() *cobra.Command {
	opts := capacityOpts{}

	command := &cobra.Command{
		Use:     "capacity",
		Example: "lsbmark image capacity --image source.png --text \"(c) 2024 Jane Doe\"",
		Short:   "Show how much text an image can carry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintCapacity(cmd.OutOrStdout(), opts.image, opts.text, cmd.Flags().Changed("text"))
		},
	}

	command.Flags().StringVar(&opts.image, "image", "", "Image to inspect")
	command.Flags().StringVar(&opts.text, "text", "", "Optional text to check against the capacity")
	MarkFlagsRequired(command, "image")

	return command
}

// PrintCapacity only reads the image header, so it is cheap even for huge images
func PrintCapacity(out io.Writer, imagePath, text string, checkText bool) error {
	imageConfig, format, err := imageio.DecodeConfig(imagePath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", watermark.ErrInput, imagePath, err)
	}

	bounds := image.Rect(0, 0, imageConfig.Width, imageConfig.Height)
	capacity := watermark.Capacity(bounds)
	fmt.Fprintf(out, "Image: %s (%s, %dx%d)\n", filepath.Base(imagePath), format, imageConfig.Width, imageConfig.Height)
	fmt.Fprintf(out, "Capacity: %s bits (%s)\n", humanize.Comma(int64(capacity)), humanize.Bytes(uint64(capacity/8)))
	fmt.Fprintf(out, "Max text length: %s characters\n", humanize.Comma(int64(watermark.MaxTextLength(bounds))))

	if !checkText {
		return nil
	}
	required, err := watermark.RequiredBits(text)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Required: %s bits, fits: %s\n", humanize.Comma(int64(required)), yesNo(required <= capacity))
	return nil
}
