package report

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/fmantz/speedtracker/defs"
)

// template placeholder ids
const (
	PlaceholderStatistics    = "STATISTICS"
	PlaceholderResponseTimes = "RESPONSE_TIMES"
	PlaceholderThroughput    = "THROUGHPUT"
	PlaceholderRawData       = "RAW_DATA"
)

const (
	statisticMedian  = "median"
	statisticAverage = "average"
	statisticStdDev  = "standard-deviation"
	noData           = "no data"

	displayPlaces = 2
)

//go:embed template.html
var defaultTemplate []byte

var placeholder = regexp.MustCompile(`\$\{([[:alpha:]]|_)*\}`)

// Renderer fills the HTML template with the charts and records
type Renderer struct {
	// TemplateFile is the template to fill, the built-in template is used
	// when it does not exist
	TemplateFile string
}

func (r *Renderer) openTemplate() (io.ReadCloser, error) {
	if r.TemplateFile != "" {
		f, err := os.Open(r.TemplateFile)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open template: %w", err)
		}
		log.Debugf("Template %s not found, using built-in template", r.TemplateFile)
	}
	return io.NopCloser(bytes.NewReader(defaultTemplate)), nil
}

// Render writes the filled template to w. Each line of the template may hold
// one placeholder ${ID}; unknown ids are copied unchanged.
func (r *Renderer) Render(w io.Writer, records []defs.Record, charts Charts) error {
	responseTimes, err := json.Marshal(charts.ResponseTimes())
	if err != nil {
		return fmt.Errorf("marshal response times: %w", err)
	}
	throughput, err := json.Marshal(charts.Throughput())
	if err != nil {
		return fmt.Errorf("marshal throughput: %w", err)
	}

	tmpl, err := r.openTemplate()
	if err != nil {
		return err
	}
	defer tmpl.Close()

	out := bufio.NewWriter(w)
	reader := bufio.NewReader(tmpl)
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("read template: %w", readErr)
		}
		if line == "" && readErr != nil {
			break
		}
		line = strings.TrimRight(line, "\r\n")

		loc := placeholder.FindStringIndex(line)
		if loc == nil {
			fmt.Fprintln(out, line)
		} else {
			prefix, suffix := line[:loc[0]], line[loc[1]:]
			switch id := line[loc[0]+2 : loc[1]-1]; id {
			case PlaceholderStatistics:
				fmt.Fprintf(out, "%s%s%s\n", prefix, statisticsTable(charts), suffix)
			case PlaceholderResponseTimes:
				fmt.Fprintf(out, "%s%s%s\n", prefix, responseTimes, suffix)
			case PlaceholderThroughput:
				fmt.Fprintf(out, "%s%s%s\n", prefix, throughput, suffix)
			case PlaceholderRawData:
				fmt.Fprintf(out, "%s%s%s\n", prefix, rawDataTable(RawRows(records)), suffix)
			default:
				fmt.Fprintln(out, line)
			}
		}

		if readErr != nil {
			break
		}
	}
	return out.Flush()
}

// WriteFile renders the report into path. The report is written to a
// temporary file first so path never holds a partial report.
func (r *Renderer) WriteFile(path string, records []defs.Record, charts Charts) error {
	return writeFile(path, func(w io.Writer) error {
		return r.Render(w, records, charts)
	})
}

// writeFile writes a temporary file in the directory of path and renames it
// to path once write succeeded
func writeFile(path string, write func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write file: %w", err)
	}
	// readable by the web server
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("could not write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not write file: %w", err)
	}
	return nil
}

func statisticsTable(charts Charts) string {
	var b strings.Builder
	b.WriteString("<table id=\"statistic\">\n<tr>\n")
	for _, c := range charts.All() {
		b.WriteString("<td>\n")
		b.WriteString(statisticTable(c))
		b.WriteString("</td>\n")
	}
	b.WriteString("</tr>\n</table>")
	return b.String()
}

func statisticTable(c Chart) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<table id=\"statistic_%s\">\n", html.EscapeString(c.ID))
	fmt.Fprintf(&b, "<tr><th colspan=\"3\">%s</th></tr>\n", html.EscapeString(c.Label))
	fmt.Fprintf(&b, "<tr><th>%s</th><th>%s</th><th>%s</th></tr>\n", statisticMedian, statisticAverage, statisticStdDev)
	if c.Stats == nil {
		fmt.Fprintf(&b, "<tr><td colspan=\"3\">%s</td></tr>\n", noData)
	} else {
		s := c.Stats.Round(displayPlaces)
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			formatStat(s.Median), formatStat(s.Average), formatStat(s.StandardDeviation))
	}
	b.WriteString("</table>\n")
	return b.String()
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func rawDataTable(rows []RawRow) string {
	var b strings.Builder
	b.WriteString("<table id=\"rawdata\">\n<tr>\n")
	b.WriteString("<th class=\"ts\">timestamp</th>\n")
	for _, h := range []string{"client-wlan", "client-ip", "client-lat", "client-lon", "client-isp"} {
		fmt.Fprintf(&b, "<th class=\"client\">%s</th>\n", h)
	}
	for _, h := range []string{"server-name", "server-sponsor", "server-distance", "server-host"} {
		fmt.Fprintf(&b, "<th class=\"server\">%s</th>\n", h)
	}
	for _, h := range []string{"latency", "jitter", "download_config", "upload_config", "download", "upload"} {
		fmt.Fprintf(&b, "<th class=\"performance\">%s</th>\n", h)
	}
	b.WriteString("</tr>\n")

	for _, r := range rows {
		b.WriteString("<tr>\n")
		cells(&b, "ts", r.Timestamp)
		if r.HasClient {
			cells(&b, "client", r.ClientWlan, r.ClientIP, r.ClientLat, r.ClientLon, r.ClientISP)
		} else {
			b.WriteString("<td colspan=\"5\" class=\"client\"></td>\n")
		}
		if r.HasServer {
			cells(&b, "server", r.ServerName, r.ServerSponsor, r.ServerDistance, r.ServerHost)
		} else {
			b.WriteString("<td colspan=\"4\" class=\"server\"></td>\n")
		}
		if r.HasPerformance {
			cells(&b, "performance", r.Latency, r.Jitter, r.DownloadConfig, r.UploadConfig, r.Download, r.Upload)
		} else {
			b.WriteString("<td colspan=\"6\" class=\"performance\"></td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>")
	return b.String()
}

func cells(b *strings.Builder, class string, values ...string) {
	for _, v := range values {
		fmt.Fprintf(b, "<td class=\"%s\">%s</td>\n", class, html.EscapeString(v))
	}
}
