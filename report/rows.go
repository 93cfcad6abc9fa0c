package report

import (
	"strconv"

	"github.com/fmantz/speedtracker/defs"
)

// RawRow is one record flattened into table columns. Numbers are in the
// units the speed test reported.
type RawRow struct {
	Timestamp      string `csv:"timestamp"`
	ClientWlan     string `csv:"client-wlan"`
	ClientIP       string `csv:"client-ip"`
	ClientLat      string `csv:"client-lat"`
	ClientLon      string `csv:"client-lon"`
	ClientISP      string `csv:"client-isp"`
	ServerName     string `csv:"server-name"`
	ServerSponsor  string `csv:"server-sponsor"`
	ServerDistance string `csv:"server-distance"`
	ServerHost     string `csv:"server-host"`
	Latency        string `csv:"latency"`
	Jitter         string `csv:"jitter"`
	DownloadConfig string `csv:"download_config"`
	UploadConfig   string `csv:"upload_config"`
	Download       string `csv:"download"`
	Upload         string `csv:"upload"`

	HasClient      bool `csv:"-"`
	HasServer      bool `csv:"-"`
	HasPerformance bool `csv:"-"`
}

// RawRows flattens records into table rows
func RawRows(records []defs.Record) []RawRow {
	rows := make([]RawRow, 0, len(records))
	for i := range records {
		r := &records[i]
		row := RawRow{Timestamp: r.Timestamp.Format(defs.DateTimeFormat)}
		if c := r.Client; c != nil {
			row.HasClient = true
			row.ClientWlan = str(c.Wlan)
			row.ClientIP = c.IP
			row.ClientLat = c.Lat
			row.ClientLon = c.Lon
			row.ClientISP = c.ISP
		}
		if s := r.Server; s != nil {
			row.HasServer = true
			row.ServerName = s.Name
			row.ServerSponsor = s.Sponsor
			row.ServerDistance = s.Distance
			row.ServerHost = s.Host
		}
		if p := r.Performance; p != nil {
			row.HasPerformance = true
			row.Latency = strconv.FormatUint(uint64(p.Latency), 10)
			if p.Jitter != nil {
				row.Jitter = strconv.FormatUint(uint64(*p.Jitter), 10)
			}
			row.DownloadConfig = str(p.DownloadConfig)
			row.UploadConfig = str(p.UploadConfig)
			row.Download = formatFloat(p.Download)
			row.Upload = formatFloat(p.Upload)
		}
		rows = append(rows, row)
	}
	return rows
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
