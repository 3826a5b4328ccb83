package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"example.com/MikuPush/cmd/utils"
	"example.com/MikuPush/pkg/config"
	"example.com/MikuPush/pkg/logger"
	"example.com/MikuPush/pkg/models"
	"example.com/MikuPush/pkg/transfer"
)

type PushOptions struct {
	Host     string
	Port     uint16
	User     string
	Password string
	KeyFile  string
	KeyPass  string
	Dest     string
	Extract  bool
	Profile  string
	Alias    string
	Progress bool

	sources        []string
	extractChanged bool
}

func NewPushOptions() *PushOptions {
	return &PushOptions{Progress: true}
}

func NewCmdPush() *cobra.Command {
	o := NewPushOptions()
	cmd := &cobra.Command{
		Use:   "push path... (-H [user@]host[:port] | -f profile) -d remote_dir",
		Short: "打包本地文件并推送到远程主机",
		Long: `打包本地文件并推送到远程主机
将指定的本地文件和目录打包为 tar.gz 归档,通过 SFTP 上传到远程目录,
可选择上传后在远端解压 (-x),解压成功后远端归档自动删除。
无论成败,本地临时归档都会被清理。
用法示例:
mpush push ./dist -H deploy@web01 -d /var/www/html -x
mpush push app.conf logs/ -f web01 -d /etc/app
连接信息可通过 -a 保存为配置,之后用 -f 引用,密码加密存储在 ~/.mpush/`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Complete(cmd, args)
			if err := o.Validate(); err != nil {
				return fmt.Errorf("参数错误: %v", err)
			}
			return o.Run()
		},
	}
	cmd.Flags().StringVarP(&o.Host, "host", "H", "", "目标主机[user@]host[:port]")
	cmd.Flags().Uint16VarP(&o.Port, "port", "p", 0, "SSH端口")
	cmd.Flags().StringVarP(&o.User, "user", "u", "", "SSH用户名")
	cmd.Flags().StringVarP(&o.Password, "password", "w", "", "SSH密码")
	cmd.Flags().StringVarP(&o.KeyFile, "key", "i", "", "SSH私钥文件路径")
	cmd.Flags().StringVarP(&o.KeyPass, "key_pass", "W", "", "SSH私钥密码")
	cmd.Flags().StringVarP(&o.Dest, "dest", "d", "", "远程目标目录")
	cmd.Flags().BoolVarP(&o.Extract, "extract", "x", false, "上传后在远端解压")
	cmd.Flags().StringVarP(&o.Profile, "profile", "f", "", "使用保存的连接配置(名称或别名)")
	cmd.Flags().StringVarP(&o.Alias, "alias", "a", "", "将本次连接信息保存为配置")
	cmd.Flags().BoolVar(&o.Progress, "progress", true, "显示上传进度条")
	cmd.MarkFlagsMutuallyExclusive("password", "key")
	return cmd
}

func (o *PushOptions) Complete(cmd *cobra.Command, args []string) {
	o.sources = args
	o.extractChanged = cmd.Flags().Changed("extract")
	if o.Host != "" {
		user, host, port := utils.ParseAddr(o.Host)
		o.Host = host
		if o.User == "" {
			o.User = user
		}
		if o.Port == 0 {
			o.Port = port
		}
	}
}

func (o *PushOptions) Validate() error {
	if len(o.sources) == 0 {
		return fmt.Errorf("至少需要指定一个本地路径")
	}
	if o.Host == "" && o.Profile == "" {
		return fmt.Errorf("必须通过 -H 指定主机或通过 -f 指定配置")
	}
	return nil
}

func (o *PushOptions) Run() error {
	configPath, keyPath := utils.GetConfigFilePath()
	store, err := config.NewDefaultStore(configPath, keyPath)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %v", err)
	}

	req, err := o.buildRequest(cfg)
	if err != nil {
		return err
	}

	// Ctrl+C 触发取消,清理逻辑由 Worker 的 defer 保证
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := transfer.NewWorker(logger.Logger)

	var g errgroup.Group
	g.Go(func() error {
		return worker.Run(ctx, req)
	})
	o.render(worker.Events())

	if err := g.Wait(); err != nil {
		return fmt.Errorf("传输失败: %v", err)
	}

	if o.Alias != "" {
		if err := o.saveProfile(store, cfg, req); err != nil {
			fmt.Fprintf(os.Stderr, "保存连接配置失败: %v\n", err)
		} else {
			fmt.Printf("连接配置已保存为 '%s'\n", o.Alias)
		}
	}
	return nil
}

// buildRequest 合并配置与命令行参数,命令行优先
func (o *PushOptions) buildRequest(cfg *config.Configuration) (transfer.Request, error) {
	var req transfer.Request

	if o.Profile != "" {
		profile, ok := cfg.Resolve(o.Profile)
		if !ok {
			return req, fmt.Errorf("未找到配置 '%s'", o.Profile)
		}
		req.Host = profile.Address
		req.Port = profile.Port
		req.Identity = profile.Identity
		req.RemoteDir = profile.RemoteDir
		req.Extract = profile.Extract
	}

	if o.Host != "" {
		req.Host = o.Host
	}
	if o.Port != 0 {
		req.Port = o.Port
	}
	if req.Port == 0 {
		req.Port = 22
	}
	if o.User != "" {
		req.Identity.User = o.User
	}
	if req.Identity.User == "" {
		req.Identity.User = utils.GetCurrentUser()
	}

	if o.KeyFile != "" {
		req.Identity.AuthType = models.AuthKey
		req.Identity.KeyPath = o.KeyFile
		req.Identity.Passphrase = o.KeyPass
	} else if o.Password != "" {
		req.Identity.AuthType = models.AuthPassword
		req.Identity.Password = o.Password
	}
	if req.Identity.AuthType == "" {
		password, err := utils.ReadPasswordFromTerminal(
			fmt.Sprintf("请输入 %s@%s 的密码: ", req.Identity.User, req.Host))
		if err != nil {
			return req, fmt.Errorf("读取密码失败: %v", err)
		}
		req.Identity.AuthType = models.AuthPassword
		req.Identity.Password = password
	}

	if o.Dest != "" {
		req.RemoteDir = o.Dest
	}
	if req.RemoteDir == "" {
		return req, fmt.Errorf("必须通过 -d 指定远程目标目录")
	}
	if o.extractChanged {
		req.Extract = o.Extract
	}

	req.Sources = o.sources
	return req, nil
}

// render 消费事件通道并输出进度,直到通道关闭
func (o *PushOptions) render(events <-chan transfer.Event) {
	var bar *progressbar.ProgressBar
	for e := range events {
		switch e.Stage {
		case transfer.StageUploading:
			if !o.Progress {
				continue
			}
			if bar == nil {
				bar = progressbar.DefaultBytes(e.Total, "上传中")
			}
			bar.Set64(e.Bytes)
		case transfer.StageCompleted:
			if bar != nil {
				bar.Finish()
			}
			fmt.Println(e.Message)
		case transfer.StageFailed:
			if bar != nil {
				bar.Exit()
			}
			// 失败原因由 RunE 返回的错误统一输出,这里只补充远端 stderr
			if e.Err != nil && e.Err.Stderr != "" {
				fmt.Fprintln(os.Stderr, e.Err.Stderr)
			}
		default:
			if e.Message != "" {
				fmt.Println(e.Message)
			}
		}
	}
}

func (o *PushOptions) saveProfile(store config.Store, cfg *config.Configuration, req transfer.Request) error {
	cfg.Profiles[o.Alias] = models.Profile{
		Address:   req.Host,
		Port:      req.Port,
		Identity:  req.Identity,
		RemoteDir: req.RemoteDir,
		Extract:   req.Extract,
	}
	return store.Save(cfg)
}
