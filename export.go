package astrocore

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// ExportConfig configures StreamTrajectory's CSV output. Adapted from the
// teacher's ExportConfig: the Cosmographia catalog/interpolated-state
// machinery is dropped (no viewer to target it at; see DESIGN.md),
// leaving the orbital-elements CSV stream and its custom-column hook.
type ExportConfig struct {
	Filename     string
	Timestamped  bool
	StepSize     Duration                       // minimum spacing between written rows; zero writes every point
	CSVAppend    func(pt TrajectoryPoint) string // extra trailing columns (no leading comma)
	CSVAppendHdr func() string                   // header text for the extra columns
}

// IsUseless reports whether this config would produce no output at all.
func (c ExportConfig) IsUseless() bool { return c.Filename == "" }

// createCSVFile creates the destination CSV file inside outputDir and
// writes its header row. outputDir must already exist; no directories are
// created.
func createCSVFile(conf ExportConfig, outputDir string) (*os.File, error) {
	filename := fmt.Sprintf("%s/orbital-elements-%s.csv", outputDir, conf.Filename)
	f, err := os.Create(filename)
	if err != nil {
		return nil, newError("createCSVFile", InvalidArgument, "%s", err)
	}
	header := "epoch_jd,a_m,e,i_deg,raan_deg,argp_deg,nu_deg"
	if conf.CSVAppendHdr != nil {
		header += "," + conf.CSVAppendHdr()
	}
	if _, err := f.WriteString(header + "\n"); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// StreamTrajectory drains pts, writing one CSV row per trajectory point
// (subject to conf.StepSize spacing) until the channel closes. It runs in
// the caller's goroutine; callers that want to export while a propagation
// is still running feed it from a separate goroutine over a buffered
// channel, the same streaming idiom the teacher's StreamStates used.
func StreamTrajectory(conf ExportConfig, pts <-chan TrajectoryPoint) error {
	if conf.IsUseless() {
		for range pts {
			// drain without writing
		}
		return nil
	}

	cfg := smdConfig()
	f, err := createCSVFile(conf, cfg.OutputDir)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	var last TrajectoryPoint
	var wroteFirst bool
	for pt := range pts {
		if wroteFirst && pt.Epoch.Sub(last.Epoch).Seconds() < conf.StepSize.Seconds() {
			continue
		}
		coe := NewConicElementsFromStateVector(pt.State)
		row := []string{
			strconv.FormatFloat(pt.Epoch.JD(), 'f', 8, 64),
			strconv.FormatFloat(coe.A, 'f', 6, 64),
			strconv.FormatFloat(coe.E, 'f', 9, 64),
			strconv.FormatFloat(Rad2deg(coe.I), 'f', 6, 64),
			strconv.FormatFloat(Rad2deg(coe.RAAN), 'f', 6, 64),
			strconv.FormatFloat(Rad2deg(coe.ArgPeriapsis), 'f', 6, 64),
			strconv.FormatFloat(Rad2deg(coe.TrueAnomaly), 'f', 6, 64),
		}
		if conf.CSVAppend != nil {
			row = append(row, conf.CSVAppend(pt))
		}
		if err := w.Write(row); err != nil {
			return err
		}
		last = pt
		wroteFirst = true
	}
	return nil
}
