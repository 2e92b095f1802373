package iodataset

import (
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// streamProgress reports an indeterminate-length item stream on STDERR
// via cheggaaa/pb/v3 (the total is unknown ahead of time: both the KB and
// catalog sources are channels, not slices) and logs a humanized summary
// once the stream closes, the dual STDOUT/STDERR reporting shape the
// teacher uses around its own long-running population steps.
type streamProgress struct {
	bar   *pb.ProgressBar
	label string
	start time.Time
	count int
}

func newStreamProgress(label string) *streamProgress {
	bar := pb.Full.Start(0)
	bar.Set("prefix", label+": ")
	bar.Set(pb.CleanOnFinish, true)
	return &streamProgress{bar: bar, label: label, start: time.Now()}
}

func (p *streamProgress) add(n int) {
	p.count += n
	p.bar.Add(n)
}

func (p *streamProgress) finish() {
	p.bar.Finish()
	gn.Message(
		"%s: streamed <em>%s</em> items in %s",
		p.label, humanize.Comma(int64(p.count)), gnfmt.TimeString(time.Since(p.start).Seconds()),
	)
}
