package snowflake

import (
	"strconv"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

func GenID() int64 {
	return node.Generate().Int64()
}

// GenOrderSn 生成订单流水号
func GenOrderSn() string {
	return strconv.FormatInt(node.Generate().Int64(), 10)
}
