// Package config turns command-line flags into run options.
package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names.
const (
	KeyURL         = "url"
	KeyCSV         = "csv"
	KeyDst         = "dst"
	KeyImages      = "images"
	KeyTable       = "table"
	KeyStyle       = "style"
	KeyDebugStyles = "debugstyles"
	KeyVerbose     = "verbose"
)

// HTTP is the fixed network identity of the tool.
type HTTP struct {
	UserAgent    string
	PageTimeout  time.Duration
	ImageTimeout time.Duration
	DialTimeout  time.Duration
	ChunkSize    int
}

// DefaultHTTP returns the identity every request is sent with.
func DefaultHTTP() HTTP {
	return HTTP{
		UserAgent:    "FakeAgent/6.9 (FakeOS 1337; FakeOS; xQ) FakeWebKit/0.666 (KHTML, like Gecko) FakeCrawler/0",
		PageTimeout:  3 * time.Second,
		ImageTimeout: 5 * time.Second,
		DialTimeout:  3 * time.Second,
		ChunkSize:    1024,
	}
}

// Options is one invocation of the CLI.
type Options struct {
	URL         string
	CSV         string
	Dst         string
	Images      bool
	Table       bool
	Style       string
	DebugStyles bool
	Verbose     bool
	HTTP        HTTP
}

// RegisterFlags declares every CLI flag on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(KeyURL, "u", "", "specify url to parse")
	fs.StringP(KeyCSV, "c", "", "specify csv file to use")
	fs.StringP(KeyDst, "d", "", "specify csv dst dir to use")
	fs.BoolP(KeyImages, "i", false, "save images from content")
	fs.BoolP(KeyTable, "t", false, "show table")
	fs.StringP(KeyStyle, "s", "", "specify table style")
	fs.Bool(KeyDebugStyles, false, "debug color themes")
	fs.BoolP(KeyVerbose, "v", false, "show info")
}

// Load binds fs into a private viper instance and reads Options back out.
// Only flags are consulted; no config file or environment is read.
func Load(fs *pflag.FlagSet) (Options, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Options{}, err
	}
	opts := Options{
		URL:         v.GetString(KeyURL),
		CSV:         v.GetString(KeyCSV),
		Dst:         v.GetString(KeyDst),
		Images:      v.GetBool(KeyImages),
		Table:       v.GetBool(KeyTable),
		Style:       v.GetString(KeyStyle),
		DebugStyles: v.GetBool(KeyDebugStyles),
		Verbose:     v.GetBool(KeyVerbose),
		HTTP:        DefaultHTTP(),
	}
	if opts.Dst == "" {
		opts.Dst = "."
	}
	return opts, nil
}
