package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pixveil/config"
	"pixveil/imgutil"
	"pixveil/jpegsteg"
	"pixveil/lsb"
)

// cliOptions carries the effective settings after merging the config
// file with command-line flags.
type cliOptions struct {
	codec    lsb.Codec
	outPath  string
	format   string
	confPath string
}

func rootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "pixveil",
		Short:         "Hide and recover payloads in image pixel data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.confPath, "config", "", "path to a YAML defaults file")
	root.PersistentFlags().StringVarP(&opts.outPath, "out", "o", "", "output path")

	var channels string
	var legacy bool
	root.PersistentFlags().StringVar(&channels, "channels", "", "channels used by the 1-bit scheme, e.g. rgb")
	root.PersistentFlags().BoolVar(&legacy, "legacy-delimiter", false, "use the <<END>>-terminated text framing")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if opts.confPath != "" {
			var err error
			cfg, err = config.Load(opts.confPath)
			if err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("channels") {
			cfg.Channels = channels
		}
		if cmd.Flags().Changed("legacy-delimiter") {
			cfg.LegacyDelimiter = legacy
		}
		mask, err := lsb.ParseChannelMask(cfg.Channels)
		if err != nil {
			return err
		}
		opts.codec = lsb.Codec{Mask: mask}
		if cfg.LegacyDelimiter {
			opts.codec.Framing = lsb.FramingDelimiter
		}
		opts.format = cfg.OutputFormat
		return nil
	}

	root.AddCommand(
		hideTextCmd(opts),
		revealTextCmd(opts),
		hideImageCmd(opts),
		revealImageCmd(opts),
		hideFileCmd(opts),
		revealFileCmd(opts),
	)
	return root
}

func hideTextCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hide-text <cover> <text>",
		Short: "Hide a text message in a carrier image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coverBytes, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if imgutil.Sniff(coverBytes) == imgutil.FormatJPEG {
				stego, err := jpegsteg.Hide(coverBytes, []byte(args[1]))
				if err != nil {
					return err
				}
				return writeOut(opts.outPath, "stego.jpg", stego)
			}
			cover, _, err := imgutil.Decode(coverBytes)
			if err != nil {
				return err
			}
			stego, err := opts.codec.EmbedText(cover, args[1])
			if err != nil {
				return err
			}
			return writeImage(opts, stego)
		},
	}
}

func revealTextCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reveal-text <stego>",
		Short: "Recover a hidden text message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stegoBytes, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if imgutil.Sniff(stegoBytes) == imgutil.FormatJPEG {
				data, err := jpegsteg.Reveal(stegoBytes)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			stego, _, err := imgutil.Decode(stegoBytes)
			if err != nil {
				return err
			}
			text, err := opts.codec.ExtractText(stego)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func hideImageCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hide-image <cover> <secret>",
		Short: "Hide a secondary image in a carrier image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cover, err := readCarrier(args[0])
			if err != nil {
				return err
			}
			secretBytes, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			secret, _, err := imgutil.Decode(secretBytes)
			if err != nil {
				return err
			}
			stego, err := opts.codec.EmbedImage(cover, secret)
			if err != nil {
				return err
			}
			return writeImage(opts, stego)
		},
	}
}

func revealImageCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reveal-image <stego>",
		Short: "Recover a hidden secondary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stego, err := readCarrier(args[0])
			if err != nil {
				return err
			}
			secret, err := opts.codec.ExtractImage(stego)
			if err != nil {
				return err
			}
			data, err := imgutil.Encode(secret, opts.format)
			if err != nil {
				return err
			}
			return writeOut(opts.outPath, "secret."+opts.format, data)
		},
	}
}

func hideFileCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hide-file <cover> <file>",
		Short: "Hide an arbitrary file in a carrier image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coverBytes, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			ext := filepath.Ext(args[1])
			if imgutil.Sniff(coverBytes) == imgutil.FormatJPEG {
				stego, err := jpegsteg.Hide(coverBytes, lsb.FrameFile(data, ext))
				if err != nil {
					return err
				}
				return writeOut(opts.outPath, "stego.jpg", stego)
			}
			cover, _, err := imgutil.Decode(coverBytes)
			if err != nil {
				return err
			}
			stego, err := opts.codec.EmbedFile(cover, data, ext)
			if err != nil {
				return err
			}
			return writeImage(opts, stego)
		},
	}
}

func revealFileCmd(opts *cliOptions) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "reveal-file <stego>",
		Short: "Recover a hidden file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stegoBytes, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var data []byte
			var ext string
			if imgutil.Sniff(stegoBytes) == imgutil.FormatJPEG {
				framed, err := jpegsteg.Reveal(stegoBytes)
				if err != nil {
					return err
				}
				data, ext, err = lsb.ParseFile(framed)
				if err != nil {
					return err
				}
			} else {
				stego, _, err := imgutil.Decode(stegoBytes)
				if err != nil {
					return err
				}
				data, ext, err = opts.codec.ExtractFile(stego)
				if err != nil {
					return err
				}
			}
			if !strings.HasPrefix(ext, ".") && ext != "" {
				ext = "." + ext
			}
			out := filepath.Join(outDir, "extracted"+ext)
			if opts.outPath != "" {
				out = opts.outPath
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "dir", "d", ".", "directory for the extracted file")
	return cmd
}

// readCarrier loads and decodes a lossless carrier image.
func readCarrier(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, format, err := imgutil.Decode(data)
	if err != nil {
		return nil, err
	}
	if format == imgutil.FormatJPEG {
		return nil, fmt.Errorf("%s: jpeg carriers only support hide-text and hide-file", path)
	}
	return img, nil
}

func writeImage(opts *cliOptions, stego *image.RGBA) error {
	data, err := imgutil.Encode(stego, opts.format)
	if err != nil {
		return err
	}
	return writeOut(opts.outPath, "stego."+opts.format, data)
}

func writeOut(path, fallback string, data []byte) error {
	if path == "" {
		path = fallback
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
