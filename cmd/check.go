package cmd

import (
	"context"
	"fmt"
	"net"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"github.com/spf13/cobra"

	"example.com/MikuPush/cmd/utils"
	"example.com/MikuPush/pkg/config"
	"example.com/MikuPush/pkg/models"
	"example.com/MikuPush/pkg/ssh"
)

type CheckOptions struct {
	Host string
	Port uint16
	User string
	Auth bool // 是否尝试 SSH 认证 (需要配置中有认证信息)
}

func NewCmdCheck() *cobra.Command {
	o := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [user@]host[:port] | profile",
		Short: "检查目标主机的连通性",
		Long: `检查目标主机的连通性
依次执行 ICMP ping、TCP 端口探测,参数为保存的配置名时
可附加 --auth 用保存的认证信息尝试 SSH 登录。
用法示例:
mpush check web01:22
mpush check my-profile --auth`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := o.Complete(args[0])
			if err != nil {
				return err
			}
			return o.Run(identity)
		},
	}
	cmd.Flags().BoolVar(&o.Auth, "auth", false, "使用保存的认证信息尝试SSH登录")
	return cmd
}

// Complete 先尝试按配置名解析,失败则按地址解析
func (o *CheckOptions) Complete(target string) (models.Identity, error) {
	configPath, keyPath := utils.GetConfigFilePath()
	if store, err := config.NewDefaultStore(configPath, keyPath); err == nil {
		if cfg, err := store.Load(); err == nil {
			if p, ok := cfg.Resolve(target); ok {
				o.Host = p.Address
				o.Port = p.Port
				if o.Port == 0 {
					o.Port = 22
				}
				return p.Identity, nil
			}
		}
	}

	user, host, port := utils.ParseAddr(target)
	if host == "" {
		return models.Identity{}, fmt.Errorf("无效的目标 '%s'", target)
	}
	o.Host = host
	o.User = user
	o.Port = port
	if o.Port == 0 {
		o.Port = 22
	}
	if o.Auth {
		return models.Identity{}, fmt.Errorf("--auth 需要使用保存的配置名")
	}
	return models.Identity{}, nil
}

func (o *CheckOptions) Run(identity models.Identity) error {
	// ICMP 不通不算失败,很多环境禁 ping
	pinger, err := probing.NewPinger(o.Host)
	if err != nil {
		return fmt.Errorf("解析主机失败: %v", err)
	}
	pinger.Count = 3
	pinger.Timeout = 3 * time.Second
	pinger.SetPrivileged(false)
	if err := pinger.Run(); err != nil || pinger.Statistics().PacketsRecv == 0 {
		fmt.Printf("ICMP:  %s 无响应 (可能被防火墙拦截)\n", o.Host)
	} else {
		stats := pinger.Statistics()
		fmt.Printf("ICMP:  %s 可达,平均延迟 %v\n", o.Host, stats.AvgRtt)
	}

	addr := fmt.Sprintf("%s:%d", o.Host, o.Port)
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return fmt.Errorf("TCP:   %s 端口不可达: %v", addr, err)
	}
	conn.Close()
	fmt.Printf("TCP:   %s 端口开放\n", addr)

	if o.Auth {
		auth, err := ssh.FromIdentity(identity)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := ssh.Dial(ctx, o.Host, o.Port, identity.User, auth)
		if err != nil {
			return fmt.Errorf("SSH:   登录失败: %v", err)
		}
		client.Close()
		fmt.Printf("SSH:   %s@%s 登录成功\n", identity.User, addr)
	}
	return nil
}
