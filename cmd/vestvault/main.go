// Package main 启动应用程序
package main

import "github.com/yeisme/vestvault/pkg/cmd"

//	@title			VestVault API
//	@version		1.0
//	@description	VestVault 是一个托管资产归属调度服务，按计划签名并广播周期性转账。
//	@BasePath		/api/v1

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

//	@contact.name	yeisme
//	@contact.email	yefun2004@gmail.com.

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
