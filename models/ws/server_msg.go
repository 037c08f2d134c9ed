package wsmodels

type ServerMessage struct {
	ToUserID int64  `json:"-"`
	Time     string `json:"time"`  // event time
	Code     string `json:"code"`  // push code
	Title    string `json:"title"` // push title
	Msg      string `json:"msg"`   // push text
}
