package scan

import (
	"fmt"
	"os"

	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/detect"
)

// Open は単一ファイルを読み込み、言語判定済みのバッファを返します。
// lang が空でなければ判定より優先されます。
func Open(path, lang string) (*buffer.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isBinary(data) {
		return nil, fmt.Errorf("%s: binary file", path)
	}
	info := detect.Detect(path, data, lang)
	return buffer.FromBytes(path, info.Name, data), nil
}
