package defs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Client represents the client endpoint the speed test determined
type Client struct {
	Wlan *string
	IP   string
	Lat  string
	Lon  string
	ISP  string
}

// Server represents the speed test server that was selected
type Server struct {
	Name     string
	Sponsor  string
	Distance string
	Host     string
}

// Performance represents the measured values. Latency and jitter are in
// milliseconds, download and upload in bits per second.
type Performance struct {
	Latency        uint32
	Jitter         *uint32
	DownloadConfig *string
	UploadConfig   *string
	Download       *float64
	Upload         *float64
}

// Record is one speed test invocation as stored in a data file. The
// sections are independent of each other, nil means absent.
type Record struct {
	Timestamp   time.Time
	Client      *Client
	Server      *Server
	Performance *Performance
}

// wire format as produced by the speed test tool

type wireTimestamp struct {
	time.Time
}

func (t *wireTimestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp is not a string: %s", b)
	}
	ts, err := time.Parse(DateTimeFormat, s)
	// time.Parse accepts fractional seconds the layout does not have
	if err != nil || ts.Format(DateTimeFormat) != s {
		return fmt.Errorf("%w: %q", ErrBadTimestamp, s)
	}
	t.Time = ts
	return nil
}

func (t wireTimestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(DateTimeFormat))
}

type wireClient struct {
	Wlan *string `json:"wlan,omitempty"`
	IP   *string `json:"ip"`
	Lat  *string `json:"lat"`
	Lon  *string `json:"lon"`
	ISP  *string `json:"isp"`
}

type wireServer struct {
	Name     *string `json:"name"`
	Sponsor  *string `json:"sponsor"`
	Distance *string `json:"distance"`
	Host     *string `json:"host"`
}

type wirePerformance struct {
	Latency        *uint32  `json:"latency"`
	Jitter         *uint32  `json:"jitter,omitempty"`
	DownloadConfig *string  `json:"downloadConfig,omitempty"`
	UploadConfig   *string  `json:"uploadConfig,omitempty"`
	Download       *float64 `json:"download,omitempty"`
	Upload         *float64 `json:"upload,omitempty"`
}

type wireRecord struct {
	Timestamp   *wireTimestamp   `json:"timestamp"`
	Client      *wireClient      `json:"client,omitempty"`
	Server      *wireServer      `json:"server,omitempty"`
	Performance *wirePerformance `json:"performance,omitempty"`
}

// ParseRecord decodes one line of a data file. The returned error is always
// a *ParseError.
func ParseRecord(line string) (*Record, error) {
	trimmed := bytes.TrimSpace([]byte(line))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, malformed("not a JSON object")
	}

	exact, err := exactKeys(trimmed)
	if err != nil {
		return nil, malformed("%s", err)
	}

	var w wireRecord
	if err := json.Unmarshal(exact, &w); err != nil {
		if errors.Is(err, ErrBadTimestamp) {
			return nil, &ParseError{Kind: ErrBadTimestamp, Detail: err.Error()}
		}
		return nil, malformed("%s", err)
	}
	if w.Timestamp == nil {
		return nil, malformed("missing field timestamp")
	}

	rec := &Record{Timestamp: w.Timestamp.Time}

	if c := w.Client; c != nil {
		if err := required("client", field{"ip", c.IP}, field{"lat", c.Lat}, field{"lon", c.Lon}, field{"isp", c.ISP}); err != nil {
			return nil, err
		}
		rec.Client = &Client{Wlan: c.Wlan, IP: *c.IP, Lat: *c.Lat, Lon: *c.Lon, ISP: *c.ISP}
	}

	if s := w.Server; s != nil {
		if err := required("server", field{"name", s.Name}, field{"sponsor", s.Sponsor}, field{"distance", s.Distance}, field{"host", s.Host}); err != nil {
			return nil, err
		}
		rec.Server = &Server{Name: *s.Name, Sponsor: *s.Sponsor, Distance: *s.Distance, Host: *s.Host}
	}

	if p := w.Performance; p != nil {
		if p.Latency == nil {
			return nil, malformed("missing field performance.latency")
		}
		rec.Performance = &Performance{
			Latency:        *p.Latency,
			Jitter:         p.Jitter,
			DownloadConfig: p.DownloadConfig,
			UploadConfig:   p.UploadConfig,
			Download:       p.Download,
			Upload:         p.Upload,
		}
	}

	return rec, nil
}

// field names of the sections, spelled exactly as the speed test writes them
var sectionFields = map[string][]string{
	"client":      {"wlan", "ip", "lat", "lon", "isp"},
	"server":      {"name", "sponsor", "distance", "host"},
	"performance": {"latency", "jitter", "downloadConfig", "uploadConfig", "download", "upload"},
}

// exactKeys keeps only the keys of the record object and its sections that
// match a field name exactly. encoding/json would match them ignoring case.
func exactKeys(b []byte) ([]byte, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, err
	}

	kept := make(map[string]json.RawMessage, 1+len(sectionFields))
	if v, ok := obj["timestamp"]; ok {
		kept["timestamp"] = v
	}
	for section, fields := range sectionFields {
		v, ok := obj[section]
		if !ok {
			continue
		}
		var sec map[string]json.RawMessage
		if err := json.Unmarshal(v, &sec); err != nil {
			return nil, fmt.Errorf("%s: %w", section, err)
		}
		if sec == nil {
			// null
			kept[section] = v
			continue
		}
		exact := make(map[string]json.RawMessage, len(fields))
		for _, f := range fields {
			if fv, ok := sec[f]; ok {
				exact[f] = fv
			}
		}
		sb, err := json.Marshal(exact)
		if err != nil {
			return nil, err
		}
		kept[section] = sb
	}
	return json.Marshal(kept)
}

type field struct {
	name  string
	value *string
}

func required(section string, fields ...field) error {
	for _, f := range fields {
		if f.value == nil {
			return malformed("missing field %s.%s", section, f.name)
		}
	}
	return nil
}

// MarshalJSON writes the record in the same shape ParseRecord reads.
func (r *Record) MarshalJSON() ([]byte, error) {
	w := wireRecord{Timestamp: &wireTimestamp{r.Timestamp}}
	if c := r.Client; c != nil {
		w.Client = &wireClient{Wlan: c.Wlan, IP: &c.IP, Lat: &c.Lat, Lon: &c.Lon, ISP: &c.ISP}
	}
	if s := r.Server; s != nil {
		w.Server = &wireServer{Name: &s.Name, Sponsor: &s.Sponsor, Distance: &s.Distance, Host: &s.Host}
	}
	if p := r.Performance; p != nil {
		w.Performance = &wirePerformance{
			Latency:        &p.Latency,
			Jitter:         p.Jitter,
			DownloadConfig: p.DownloadConfig,
			UploadConfig:   p.UploadConfig,
			Download:       p.Download,
			Upload:         p.Upload,
		}
	}
	return json.Marshal(w)
}

// Date returns the calendar day of the record timestamp.
func (r *Record) Date() time.Time {
	y, m, d := r.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
