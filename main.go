package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ByLCY/tm2label/batch"
	"github.com/ByLCY/tm2label/dsl"
	"github.com/ByLCY/tm2label/internal/config"
	"github.com/ByLCY/tm2label/internal/logger"
	"github.com/ByLCY/tm2label/label"
	"github.com/ByLCY/tm2label/layout"
	"github.com/ByLCY/tm2label/renderer"
	canvasrenderer "github.com/ByLCY/tm2label/renderer/canvas"
)

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("解析参数失败: %v", err)
	}

	l, err := logger.New(opts.Config.LogLevel, opts.Config.LogFormat, "tm2label")
	if err != nil {
		log.Fatalf("创建日志失败: %v", err)
	}
	defer l.Sync()

	var r renderer.Renderer
	if opts.Preview {
		r = canvasrenderer.NewRenderer(canvasrenderer.Options{
			FontDirs:    opts.Config.FontDirs,
			SystemFonts: opts.Config.SystemFonts,
		})
	}

	paths, err := run(opts, layout.NewBuilder(nil), r, l)
	if err != nil {
		l.Fatal("生成标签失败", zap.Error(err))
	}
	for _, p := range paths {
		fmt.Printf("已生成：%s\n", p)
	}
}

// cliOptions 汇总命令行参数。
type cliOptions struct {
	Config *config.Config

	Input    string
	XLSX     string
	Sheet    string
	Template string

	Name       string
	Text       string
	LAN        label.LAN
	Margin     string
	AutoLength bool
	Data       string

	OutDir  string
	Preview bool
	Now     func() time.Time
}

func parseFlags(args []string) (*cliOptions, error) {
	opts := &cliOptions{Config: config.Load(), Now: time.Now}
	def := label.DefaultSpec()

	var shield, core string
	fs := flag.NewFlagSet("tm2label", flag.ContinueOnError)
	fs.StringVar(&opts.Input, "in", "", "标签 DSL 文件路径")
	fs.StringVar(&opts.XLSX, "xlsx", "", "批量导入的 xlsx 文件路径")
	fs.StringVar(&opts.Sheet, "sheet", "", "xlsx 工作表名称，默认第一个")
	fs.StringVar(&opts.Template, "template", "", "写出 xlsx 导入模板（配合 -in 时包含 DSL 中的标签）后退出")
	fs.StringVar(&opts.Name, "name", "", "单个标签的文件名，默认使用当前时间")
	fs.StringVar(&opts.Text, "text", "", "纯文本标签内容，支持 ${path} 占位符")
	fs.StringVar(&opts.LAN.Length, "lan-length", def.LAN.Length, "LAN 线长度（m）")
	fs.StringVar(&opts.LAN.Category, "lan-category", def.LAN.Category, "LAN 线规格，例如 5e、6、6A")
	fs.StringVar(&shield, "lan-shielded", string(def.LAN.Shielded), "UTP 或 STP")
	fs.StringVar(&core, "lan-core", string(def.LAN.Core), "SOLID 或 TWISTED")
	fs.StringVar(&opts.Margin, "margin", "1mm", "边距，支持 mm/cm/in/pt 后缀")
	fs.BoolVar(&opts.AutoLength, "auto-length", def.AutoLength, "按内容自动调整长度")
	fs.StringVar(&opts.Data, "data", "", "绑定到 ${path} 占位符的 JSON 数据")
	fs.StringVar(&opts.OutDir, "out", "output", ".tm2 输出目录")
	fs.BoolVar(&opts.Preview, "preview", false, "同时输出 PDF 预览")
	opts.Config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("多余的参数: %s", strings.Join(fs.Args(), " "))
	}
	if opts.Input != "" && opts.XLSX != "" {
		return nil, fmt.Errorf("-in 与 -xlsx 不能同时使用")
	}

	var err error
	if opts.LAN.Shielded, err = label.ParseShield(shield); err != nil {
		return nil, err
	}
	if opts.LAN.Core, err = label.ParseCore(core); err != nil {
		return nil, err
	}
	return opts, nil
}

// job 是一个待生成的标签及其绑定数据。
type job struct {
	spec label.Spec
	data any
}

// run 串联读取、构建与写出，返回写出的文件路径。
// 所有标签构建成功后才开始写文件。
func run(opts *cliOptions, b *layout.Builder, r renderer.Renderer, l *zap.Logger) ([]string, error) {
	if l == nil {
		l = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	var data any
	if opts.Data != "" {
		if err := json.Unmarshal([]byte(opts.Data), &data); err != nil {
			return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	if opts.Template != "" {
		return writeTemplate(opts)
	}

	jobs, err := collect(opts, data)
	if err != nil {
		return nil, err
	}

	type built struct {
		name string
		coll *layout.Collection
	}
	out := make([]built, 0, len(jobs))
	seen := map[string]string{}
	for _, j := range jobs {
		j.spec = j.spec.WithTape(opts.Config.DefaultTape)
		name := j.spec.Name
		if name == "" {
			name = layout.FileName(opts.Now())
		}
		// 按落盘后的文件名判重，"a/b" 与 "a-b" 视为同一个
		name = layout.SafeName(name)
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("标签 %s 与 %s 写入同一个文件 %s", j.spec.Name, prev, name)
		}
		seen[name] = j.spec.Name

		coll, err := j.spec.Build(b, j.data)
		if err != nil {
			return nil, err
		}
		out = append(out, built{name: name, coll: coll})
	}

	var paths []string
	for _, o := range out {
		path, err := layout.WriteFile(o.coll, opts.OutDir, o.name)
		if err != nil {
			return paths, err
		}
		l.Info("label written",
			zap.String("path", path),
			zap.String("document", o.coll.Documents[0].Identifier),
		)
		paths = append(paths, path)

		if r == nil {
			continue
		}
		pdf, err := r.Render(o.coll)
		if err != nil {
			return paths, fmt.Errorf("渲染 %s 预览失败: %w", o.name, err)
		}
		pdfPath := strings.TrimSuffix(path, layout.FileExt) + ".pdf"
		if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
			return paths, fmt.Errorf("写入 PDF 文件失败: %w", err)
		}
		l.Info("preview written", zap.String("path", pdfPath))
		paths = append(paths, pdfPath)
	}
	return paths, nil
}

// collect 按 -in、-xlsx、命令行单个标签的顺序确定输入来源。
func collect(opts *cliOptions, data any) ([]job, error) {
	switch {
	case opts.Input != "":
		specs, err := readDSL(opts.Input)
		if err != nil {
			return nil, err
		}
		jobs := make([]job, 0, len(specs))
		for _, s := range specs {
			jobs = append(jobs, job{spec: s, data: data})
		}
		return jobs, nil

	case opts.XLSX != "":
		f, err := os.Open(opts.XLSX)
		if err != nil {
			return nil, fmt.Errorf("无法打开 xlsx 文件 %s: %w", opts.XLSX, err)
		}
		defer f.Close()
		rows, err := batch.Read(f, opts.Sheet)
		if err != nil {
			return nil, fmt.Errorf("读取 %s 失败: %w", opts.XLSX, err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("%s 中没有标签", opts.XLSX)
		}
		jobs := make([]job, 0, len(rows))
		for _, row := range rows {
			// 每行以整行数据作为绑定上下文
			jobs = append(jobs, job{spec: row.Spec, data: row.Data})
		}
		return jobs, nil
	}

	spec, err := inlineSpec(opts)
	if err != nil {
		return nil, err
	}
	return []job{{spec: spec, data: data}}, nil
}

func inlineSpec(opts *cliOptions) (label.Spec, error) {
	spec := label.DefaultSpec()
	spec.Name = opts.Name
	spec.Tape = opts.Config.DefaultTape
	spec.AutoLength = opts.AutoLength
	spec.LAN = opts.LAN
	if opts.Text != "" {
		spec.Kind = label.KindPlain
		spec.Text = opts.Text
	}
	if opts.Margin != "" {
		m, err := layout.ParseLength(opts.Margin)
		if err != nil {
			return spec, err
		}
		spec.Margin = m.MM()
	}
	return spec, nil
}

func readDSL(path string) ([]label.Spec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开 DSL 文件 %s: %w", path, err)
	}
	defer file.Close()

	ast, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析 DSL 失败: %w", err)
	}
	return dsl.Compile(ast)
}

func writeTemplate(opts *cliOptions) ([]string, error) {
	var specs []label.Spec
	if opts.Input != "" {
		var err error
		if specs, err = readDSL(opts.Input); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(opts.Template), 0o755); err != nil {
		return nil, fmt.Errorf("创建模板目录失败: %w", err)
	}
	f, err := os.Create(opts.Template)
	if err != nil {
		return nil, fmt.Errorf("创建模板文件失败: %w", err)
	}
	if err := batch.Write(f, specs); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return []string{opts.Template}, nil
}
