package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Santini10/IC/config"
	"github.com/Santini10/IC/internal/dto"
	"github.com/Santini10/IC/internal/model"
	"github.com/Santini10/IC/internal/repository"
	"github.com/Santini10/IC/internal/service"
	applogger "github.com/Santini10/IC/pkg/logger"
)

// ── 命令行报表 ──

type rootOptions struct {
	configPath string
	workbook   string
	filters    map[model.Dimension]*[]string
}

// NewRootCommand 创建 relatorio 根命令，输出写入 out
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{filters: make(map[model.Dimension]*[]string)}

	root := &cobra.Command{
		Use:           "relatorio",
		Short:         "Relatório de candidatos por vaga a partir da planilha do IFES",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "arquivo de configuração (yaml)")
	pf.StringVar(&opts.workbook, "planilha", "", "caminho da planilha; sobrepõe data.workbook_path")
	for _, d := range model.Dimensions {
		values := []string{}
		opts.filters[d] = &values
		pf.StringArrayVar(&values, string(d), nil, fmt.Sprintf("filtra por %s (pode repetir)", d))
	}

	root.AddCommand(
		newSummaryCommand(opts),
		newNoticesCommand(opts),
		newExportCommand(opts),
	)
	return root
}

// filterRequest 只有显式给出的维度才覆盖默认选择
func (o *rootOptions) filterRequest(cmd *cobra.Command) *dto.FilterRequest {
	var req *dto.FilterRequest
	for _, d := range model.Dimensions {
		if !cmd.Flags().Changed(string(d)) {
			continue
		}
		if req == nil {
			req = &dto.FilterRequest{}
		}
		req.SetField(d, *o.filters[d])
	}
	return req
}

// services 加载配置与工作簿并组装 Service；CLI 不使用缓存
func (o *rootOptions) services() (*service.Service, func(), error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.workbook != "" {
		cfg.Data.WorkbookPath = o.workbook
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	ds, err := repository.LoadWorkbook(cfg.Data.WorkbookPath, repository.LoadOptions{
		NoticesSheet: cfg.Data.NoticesSheet,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	if ds.NoticesErr != nil {
		logger.Warn("公告表不可用，公告列表为空", zap.Error(ds.NoticesErr))
	}

	svc := service.NewService(cfg, repository.NewRepository(ds), nil, logger)
	return svc, func() { _ = logger.Sync() }, nil
}

// ────────────────────── resumo ──────────────────────

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resumo",
		Short: "Mostra os indicadores e a tabela por semestre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, done, err := opts.services()
			if err != nil {
				return err
			}
			defer done()

			resp, err := svc.Dashboard.Build(cmd.Context(), opts.filterRequest(cmd))
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), resp)
		},
	}
}

func writeSummary(out io.Writer, resp *dto.DashboardResponse) error {
	fmt.Fprintf(out, "Total de Vagas:     %s\n", resp.KPIs.SeatsLabel)
	fmt.Fprintf(out, "Total de Inscritos: %s\n", resp.KPIs.EnrolledLabel)
	fmt.Fprintf(out, "Cand/Vaga:          %s\n\n", resp.KPIs.RatioLabel)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Semestre\tInscritos\tVagas\tCand/Vaga\t")
	for _, r := range resp.Semesters {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			r.Semester,
			service.FormatThousands(r.Enrolled),
			service.FormatThousands(r.Seats),
			service.FormatRatioKPI(r.Ratio),
		)
	}
	return tw.Flush()
}

// ────────────────────── editais ──────────────────────

func newNoticesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "editais",
		Short: "Lista os editais por semestre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, done, err := opts.services()
			if err != nil {
				return err
			}
			defer done()

			notices, err := svc.Dashboard.Notices(cmd.Context())
			if err != nil {
				return err
			}
			return writeNotices(cmd.OutOrStdout(), notices)
		},
	}
}

func writeNotices(out io.Writer, notices *dto.NoticeListResponse) error {
	if !notices.Available {
		_, err := fmt.Fprintln(out, notices.Hint)
		return err
	}
	for _, n := range notices.Items {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", n.Semester, n.Link); err != nil {
			return err
		}
	}
	return nil
}

// ────────────────────── exportar ──────────────────────

func newExportCommand(opts *rootOptions) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "exportar",
		Short: "Exporta a tabela por semestre em xlsx ou csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, done, err := opts.services()
			if err != nil {
				return err
			}
			defer done()

			file, err := svc.Export.ExportSemesters(cmd.Context(), opts.filterRequest(cmd), format)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = file.Filename
			}
			if err := os.WriteFile(path, file.Data.Bytes(), 0o644); err != nil {
				return fmt.Errorf("gravar %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Arquivo gerado: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "formato", service.ExportFormatXLSX, "xlsx ou csv")
	cmd.Flags().StringVar(&output, "saida", "", "arquivo de saída (padrão: nome sugerido)")
	return cmd
}

// Execute 执行根命令
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout).ExecuteContext(ctx)
}
