package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli"

	maria "github.com/mpalumbo/go-maria/maria"
	"github.com/mpalumbo/go-maria/maria/asm"
	"github.com/mpalumbo/go-maria/maria/backend"
	"github.com/mpalumbo/go-maria/maria/backend/terminal"
	"github.com/mpalumbo/go-maria/maria/imgimport"
	"github.com/mpalumbo/go-maria/maria/mode"
	"github.com/mpalumbo/go-maria/maria/palette"
	"github.com/mpalumbo/go-maria/maria/pixel"
	"github.com/mpalumbo/go-maria/maria/project"
)

func main() {
	app := cli.NewApp()
	app.Name = "maria"
	app.Description = "A sprite and tile editor for Atari 7800 display modes"
	app.Usage = "maria <command> [options]"
	app.Version = "1.0.0"
	app.Commands = []cli.Command{
		{
			Name:      "edit",
			Usage:     "open a project in the terminal editor (created if missing)",
			ArgsUsage: "<project.json>",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "width", Usage: "grid width for new projects", Value: 16},
				cli.IntFlag{Name: "height", Usage: "grid height for new projects", Value: 16},
				cli.StringFlag{Name: "mode", Usage: "display mode for new projects", Value: "160A"},
			},
			Action: runEdit,
		},
		{
			Name:      "export",
			Usage:     "serialize one or more projects to assembly byte lines",
			ArgsUsage: "<project.json> [more projects...]",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out, o", Usage: "output file (default stdout)"},
				cli.StringFlag{Name: "indent", Usage: "line indent", Value: "    "},
				cli.StringFlag{Name: "byte-radix", Usage: "byte radix: hex, bin or dec", Value: "hex"},
				cli.StringFlag{Name: "addr-radix", Usage: "address radix: hex, bin or dec", Value: "hex"},
				cli.IntFlag{Name: "base", Usage: "base address", Value: 0x1800},
				cli.StringFlag{Name: "label", Usage: "emit symbolic per-line labels from this base symbol"},
				cli.StringFlag{Name: "comments", Usage: "comment level: none, addresses or full", Value: "addresses"},
			},
			Action: runExport,
		},
		{
			Name:      "import",
			Usage:     "quantize an image into a new project",
			ArgsUsage: "<image.png>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out, o", Usage: "project file to write", Value: "imported.json"},
				cli.StringFlag{Name: "mode", Usage: "display mode to target", Value: "160A"},
				cli.IntFlag{Name: "palette", Usage: "active palette", Value: 0},
				cli.BoolFlag{Name: "kangaroo", Usage: "resolve colors with kangaroo mode on"},
			},
			Action: runImport,
		},
		{
			Name:      "png",
			Usage:     "render a project's resolved colors to a PNG",
			ArgsUsage: "<project.json>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out, o", Usage: "image file to write", Value: "out.png"},
			},
			Action: runPNG,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("maria failed", "error", err)
		os.Exit(1)
	}
}

func runEdit(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		cli.ShowCommandHelp(c, "edit")
		return errors.New("no project file given")
	}

	var ed *maria.Editor
	if _, err := os.Stat(path); err == nil {
		ed, err = maria.OpenEditor(path)
		if err != nil {
			return err
		}
	} else {
		m, err := mode.Parse(c.String("mode"))
		if err != nil {
			return err
		}
		ed, err = maria.NewEditor(c.Int("width"), c.Int("height"), m)
		if err != nil {
			return err
		}
		if err := ed.SaveAs(path); err != nil {
			return err
		}
	}

	term := terminal.New()
	if err := term.Init(backend.Config{Title: "maria"}); err != nil {
		return err
	}
	defer term.Cleanup()
	return term.Run(ed)
}

func runExport(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, "export")
		return errors.New("no project files given")
	}

	cfg, err := exportConfig(c)
	if err != nil {
		return err
	}

	set := palette.DefaultSet()
	grids := make([]*pixel.Grid, 0, c.NArg())
	for _, path := range c.Args() {
		g, err := project.LoadFile(path, set)
		if err != nil {
			return err
		}
		grids = append(grids, g)
	}

	res, err := asm.Serialize(cfg, grids...)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		slog.Warn("scanline byte budget exceeded", "detail", w.String())
	}

	out := os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	_, err = out.WriteString(res.Text())
	return err
}

func exportConfig(c *cli.Context) (asm.Config, error) {
	cfg := asm.DefaultConfig()
	cfg.Indent = c.String("indent")
	cfg.BaseAddress = c.Int("base")

	var err error
	if cfg.ByteRadix, err = asm.ParseRadix(c.String("byte-radix")); err != nil {
		return cfg, err
	}
	if cfg.AddressRadix, err = asm.ParseRadix(c.String("addr-radix")); err != nil {
		return cfg, err
	}
	if label := c.String("label"); label != "" {
		cfg.Labeling = asm.LabelSymbolic
		cfg.Label = label
	}

	switch strings.ToLower(c.String("comments")) {
	case "none":
		cfg.Comments = asm.CommentsNone
	case "addresses":
		cfg.Comments = asm.CommentsAddresses
	case "full":
		cfg.Comments = asm.CommentsFull
	default:
		return cfg, fmt.Errorf("unknown comment level %q", c.String("comments"))
	}
	return cfg, nil
}

func runImport(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		cli.ShowCommandHelp(c, "import")
		return errors.New("no image file given")
	}

	m, err := mode.Parse(c.String("mode"))
	if err != nil {
		return err
	}

	g, err := imgimport.FromFile(path, m, palette.DefaultSet(), c.Int("palette"), c.Bool("kangaroo"))
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := project.SaveFile(out, g); err != nil {
		return err
	}
	slog.Info("imported", "image", path, "project", out, "width", g.Width(), "height", g.Height())
	return nil
}

func runPNG(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		cli.ShowCommandHelp(c, "png")
		return errors.New("no project file given")
	}

	g, err := project.LoadFile(path, palette.DefaultSet())
	if err != nil {
		return err
	}
	return imgimport.ExportPNG(c.String("out"), g)
}
