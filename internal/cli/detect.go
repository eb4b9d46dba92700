package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"face-logbook/internal/app"
	"face-logbook/internal/recognition"

	"github.com/spf13/cobra"
)

var (
	framePath      string
	thresholdFlag  float64
	thresholdIsSet bool
)

func init() {
	detectCmd := &cobra.Command{
		Use:   "detect <identity-id>",
		Short: "Apply one detection of an identity at the current time",
		Args:  cobra.ExactArgs(1),
		Run:   runDetect,
	}

	recognizeCmd := &cobra.Command{
		Use:   "recognize",
		Short: "Match the faces of a frame and apply their detections",
		Long:  "Reads a JSON array of {\"embedding\": [...], \"bbox\": [x1,y1,x2,y2]} from --file or stdin.",
		Args:  cobra.NoArgs,
		Run:   runRecognize,
	}
	recognizeCmd.Flags().StringVar(&framePath, "file", "", "Frame JSON file (default: stdin)")

	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Match one embedding without touching attendance",
		Long:  "Reads a JSON array of floats from --file or stdin.",
		Args:  cobra.NoArgs,
		Run:   runMatch,
		PreRun: func(cmd *cobra.Command, args []string) {
			thresholdIsSet = cmd.Flags().Changed("threshold")
		},
	}
	matchCmd.Flags().StringVar(&framePath, "file", "", "Embedding JSON file (default: stdin)")
	matchCmd.Flags().Float64Var(&thresholdFlag, "threshold", 0, "Override the configured match threshold")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the attendance tables",
		Args:  cobra.NoArgs,
		Run:   runMigrate,
	}

	RootCmd.AddCommand(detectCmd, recognizeCmd, matchCmd, migrateCmd)
}

func runDetect(cmd *cobra.Command, args []string) {
	rt, err := openRuntime(cmd.Context())
	if err != nil {
		exitErr("open", err)
	}
	defer rt.Close()

	res, err := rt.Registry.Attendance.ProcessDetection(cmd.Context(), args[0], rt.Registry.Clock.Now())
	if err != nil {
		exitErr("detect", err)
	}
	fmt.Println(res.Outcome)
}

func runRecognize(cmd *cobra.Command, args []string) {
	var faces []recognition.DetectedFace
	if err := decodeInput(framePath, &faces); err != nil {
		exitErr("read frame", err)
	}

	rt, err := openRuntime(cmd.Context())
	if err != nil {
		exitErr("open", err)
	}
	defer rt.Close()

	res, err := rt.Registry.Recognition.ProcessFrame(cmd.Context(), faces)
	if err != nil {
		exitErr("recognize", err)
	}
	printJSON(res)
}

func runMatch(cmd *cobra.Command, args []string) {
	var embedding []float32
	if err := decodeInput(framePath, &embedding); err != nil {
		exitErr("read embedding", err)
	}

	rt, err := openRuntime(cmd.Context())
	if err != nil {
		exitErr("open", err)
	}
	defer rt.Close()

	var threshold *float64
	if thresholdIsSet {
		threshold = &thresholdFlag
	}
	res, err := rt.Registry.Matcher.Match(cmd.Context(), embedding, threshold)
	if err != nil {
		exitErr("match", err)
	}
	printJSON(res)
}

func runMigrate(cmd *cobra.Command, args []string) {
	rt, err := openRuntime(cmd.Context())
	if err != nil {
		exitErr("open", err)
	}
	defer rt.Close()

	if err := app.Migrate(cmd.Context(), rt.GormDB); err != nil {
		exitErr("migrate", err)
	}
	fmt.Println("Migrated")
}

func decodeInput(path string, v any) error {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return json.NewDecoder(r).Decode(v)
}
