package errors

import "errors"

// ErrDataContract 主数据表不符合约定（缺少必需列、无法读取等），启动时必须失败并告知运维
var ErrDataContract = errors.New("数据表不符合约定，请修正输入的 Excel 文件")
