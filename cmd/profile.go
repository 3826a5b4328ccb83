package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"example.com/MikuPush/cmd/utils"
	"example.com/MikuPush/pkg/config"
)

func NewCmdProfile() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "管理保存的连接配置",
		Long: `管理保存的连接配置
配置保存在 ~/.mpush/profiles.yaml,密码与私钥密码加密存储。`,
	}
	cmd.AddCommand(newCmdProfileList())
	cmd.AddCommand(newCmdProfileShow())
	cmd.AddCommand(newCmdProfileDelete())
	cmd.AddCommand(newCmdProfileExport())
	cmd.AddCommand(newCmdProfileImport())
	return cmd
}

func openStore() (config.Store, *config.Configuration, error) {
	configPath, keyPath := utils.GetConfigFilePath()
	store, err := config.NewDefaultStore(configPath, keyPath)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %v", err)
	}
	return store, cfg, nil
}

func newCmdProfileList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出全部连接配置",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := openStore()
			if err != nil {
				return err
			}
			if len(cfg.Profiles) == 0 {
				fmt.Println("暂无保存的连接配置")
				return nil
			}
			names := make([]string, 0, len(cfg.Profiles))
			for name := range cfg.Profiles {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				p := cfg.Profiles[name]
				line := fmt.Sprintf("%s\t%s@%s:%d", name, p.Identity.User, p.Address, p.Port)
				if len(p.Alias) > 0 {
					line += "\t(" + strings.Join(p.Alias, ",") + ")"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newCmdProfileShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show name",
		Short: "查看连接配置详情",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := openStore()
			if err != nil {
				return err
			}
			p, ok := cfg.Resolve(args[0])
			if !ok {
				return fmt.Errorf("未找到配置 '%s'", args[0])
			}
			fmt.Printf("地址:     %s:%d\n", p.Address, p.Port)
			fmt.Printf("用户:     %s\n", p.Identity.User)
			fmt.Printf("认证方式: %s\n", p.Identity.AuthType)
			if p.Identity.KeyPath != "" {
				fmt.Printf("私钥:     %s\n", p.Identity.KeyPath)
			}
			if p.RemoteDir != "" {
				fmt.Printf("远程目录: %s\n", p.RemoteDir)
			}
			fmt.Printf("远端解压: %v\n", p.Extract)
			if len(p.Alias) > 0 {
				fmt.Printf("别名:     %s\n", strings.Join(p.Alias, ","))
			}
			// 密码不回显
			return nil
		},
	}
}

func newCmdProfileExport() *cobra.Command {
	return &cobra.Command{
		Use:   "export file",
		Short: "导出连接配置到文件",
		Long: `导出连接配置到文件
导出件为明文 yaml,用于跨机器迁移。
加密密钥与本机绑定,密码与私钥密码不随导出件流出,导入后需重新录入。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := openStore()
			if err != nil {
				return err
			}
			if len(cfg.Profiles) == 0 {
				return fmt.Errorf("暂无可导出的连接配置")
			}
			data, err := config.Export(cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0600); err != nil {
				return fmt.Errorf("写入导出文件失败: %v", err)
			}
			fmt.Printf("已导出 %d 条配置到 %s\n", len(cfg.Profiles), args[0])
			return nil
		},
	}
}

func newCmdProfileImport() *cobra.Command {
	return &cobra.Command{
		Use:   "import file",
		Short: "从文件导入连接配置",
		Long: `从文件导入连接配置
同名配置会被导入件覆盖,其余保持不变。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("读取导入文件失败: %v", err)
			}
			n, err := config.Import(cfg, data)
			if err != nil {
				return err
			}
			if err := store.Save(cfg); err != nil {
				return fmt.Errorf("保存配置失败: %v", err)
			}
			fmt.Printf("已导入 %d 条配置\n", n)
			return nil
		},
	}
}

func newCmdProfileDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete name",
		Short: "删除连接配置",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore()
			if err != nil {
				return err
			}
			name := cfg.Find(args[0])
			if name == "" {
				return fmt.Errorf("未找到配置 '%s'", args[0])
			}
			delete(cfg.Profiles, name)
			if err := store.Save(cfg); err != nil {
				return fmt.Errorf("保存配置失败: %v", err)
			}
			fmt.Printf("配置 '%s' 已删除\n", name)
			return nil
		},
	}
}
