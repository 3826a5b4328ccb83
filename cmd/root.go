/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"example.com/MikuPush/cmd/version"
	"example.com/MikuPush/pkg/logger"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mpush [command] [flags]",
	Short: "mpush(Miku Push)是一个文件推送工具,将本地文件打包上传到远程主机",
	Long: `mpush(Miku Push)是一个文件推送工具,
将本地文件和目录打包为 tar.gz 归档,通过 SSH/SFTP 上传到远程主机,
并可选择在远端自动解压。支持保存连接配置,密码加密存储在本地。`,
	Run: func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			println(version.Short())
			os.Exit(0)
		}
		cmd.Help() // 显示帮助信息
		os.Exit(0)
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debugFlag, _ := cmd.Flags().GetBool("debug")
		if debugFlag {
			logger.SetLogLevel("debug")
			println("调试模式已开启")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "显示版本信息")
	rootCmd.PersistentFlags().Bool("debug", false, "开启调试模式")

	rootCmd.AddCommand(NewCmdPush())
	rootCmd.AddCommand(NewCmdProfile())
	rootCmd.AddCommand(NewCmdCheck())
}
