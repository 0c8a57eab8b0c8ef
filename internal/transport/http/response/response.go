package response

type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// New data 为 nil 时输出 {}，前端不用判 null
func New(code int, msg string, data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data any) Resp { return New(CodeOK, CodeMsgMap[CodeOK], data) }

// Error customMsg 为空时用默认文案
func Error(code int, customMsg string) Resp { return Fail(code, customMsg, nil) }

// Fail 失败但仍带数据（比如变更失败时的通知）
func Fail(code int, customMsg string, data any) Resp {
	msg := customMsg
	if msg == "" {
		msg = CodeMsgMap[code]
	}
	return New(code, msg, data)
}
