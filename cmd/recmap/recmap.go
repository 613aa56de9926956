package main

import (
	"flag"
	"io"
	"os"
	"strings"

	"recordmap/pkg/common_errors"
	"recordmap/pkg/record"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

var (
	FLAGS_input     string
	FLAGS_transform string
	FLAGS_format    string
	FLAGS_verbose   bool
)

func transformFor(name string) (record.EntryMapper, error) {
	switch {
	case name == "upper-keys":
		return record.EntryMapperFunc(func(e record.Entry) (record.RawEntry, error) {
			return record.Pair(strings.ToUpper(e.Key), e.Value), nil
		}), nil
	case name == "lower-keys":
		return record.EntryMapperFunc(func(e record.Entry) (record.RawEntry, error) {
			return record.Pair(strings.ToLower(e.Key), e.Value), nil
		}), nil
	case name == "flip":
		return record.EntryMapperFunc(func(e record.Entry) (record.RawEntry, error) {
			return record.Pair(e.Value, e.Key), nil
		}), nil
	case strings.HasPrefix(name, "prefix:"):
		p := strings.TrimPrefix(name, "prefix:")
		return record.EntryMapperFunc(func(e record.Entry) (record.RawEntry, error) {
			return record.Pair(p+e.Key, e.Value), nil
		}), nil
	case strings.HasPrefix(name, "strip-prefix:"):
		p := strings.TrimPrefix(name, "strip-prefix:")
		return record.EntryMapperFunc(func(e record.Entry) (record.RawEntry, error) {
			return record.Pair(strings.TrimPrefix(e.Key, p), e.Value), nil
		}), nil
	default:
		return nil, xerrors.Errorf("%q: %w", name, common_errors.ErrUnknownTransform)
	}
}

func outFormat(name string) (record.SerdeFormat, string, error) {
	switch name {
	case "json":
		return record.JSON, ".mapped.json", nil
	case "msgp":
		return record.MSGP, ".mapped.msgp", nil
	default:
		return 0, "", xerrors.Errorf("format %q: %w", name, common_errors.ErrBadSerdeFormat)
	}
}

func transformBytes(data []byte, mapper record.EntryMapper, out record.SerdeG[*record.Record]) ([]byte, error) {
	src, err := record.RecordJSONSerdeG{}.Decode(data)
	if err != nil {
		return nil, err
	}
	mapped, err := record.MapEntries(src, mapper)
	if err != nil {
		return nil, err
	}
	return out.Encode(mapped)
}

func processFile(fname string, mapper record.EntryMapper, out record.SerdeG[*record.Record], suffix string) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	enc, err := transformBytes(data, mapper, out)
	if err != nil {
		return xerrors.Errorf("%s: %w", fname, err)
	}
	outName := fname + suffix
	if err := os.WriteFile(outName, enc, 0o644); err != nil {
		return err
	}
	log.Info().Msgf("%s -> %s", fname, outName)
	return nil
}

func main() {
	flag.StringVar(&FLAGS_input, "in", "", "comma separated input files; empty reads a JSON object from stdin")
	flag.StringVar(&FLAGS_transform, "transform", "lower-keys",
		"upper-keys | lower-keys | flip | prefix:<p> | strip-prefix:<p>")
	flag.StringVar(&FLAGS_format, "format", "json", "output format: json | msgp")
	flag.BoolVar(&FLAGS_verbose, "verbose", false, "debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if FLAGS_verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	mapper, err := transformFor(FLAGS_transform)
	if err != nil {
		log.Fatal().Err(err).Msg("bad transform")
	}
	format, suffix, err := outFormat(FLAGS_format)
	if err != nil {
		log.Fatal().Err(err).Msg("bad format")
	}
	out, err := record.GetRecordSerdeG(format)
	if err != nil {
		log.Fatal().Err(err).Msg("bad format")
	}

	if FLAGS_input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("read stdin")
		}
		enc, err := transformBytes(data, mapper, out)
		if err != nil {
			log.Fatal().Err(err).Msg("transform failed")
		}
		if _, err := os.Stdout.Write(enc); err != nil {
			log.Fatal().Err(err).Msg("write stdout")
		}
		return
	}

	g := new(errgroup.Group)
	for _, fname := range strings.Split(FLAGS_input, ",") {
		fname := fname
		g.Go(func() error {
			return processFile(fname, mapper, out, suffix)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("transform failed")
	}
}
