package main

// @title Album Uploader APIs
// @version 1.0
// @description Telegram webhook that uploads chat photos into PocketBase albums.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	_ "album-uploader/docs"
	protocol "album-uploader/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Fatalln(err)
	}
}
