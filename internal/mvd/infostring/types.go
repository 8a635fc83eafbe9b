package infostring

// Clientinfo holds the userinfo keys a client announces.
type Clientinfo struct {
	Name        string `info:"name"`
	Team        string `info:"team"`
	TopColor    int    `info:"topcolor"`
	BottomColor int    `info:"bottomcolor"`
	Spectator   int    `info:"*spectator"`
	Bot         int    `info:"*bot"`
	Client      string `info:"*client"`
	Chat        int    `info:"chat"`
}

// ParseClientinfo decodes a userinfo string. Keys that fail to decode are
// left at their zero value.
func ParseClientinfo(s string) Clientinfo {
	var ci Clientinfo
	_ = Decode(s, &ci)
	return ci
}

// Serverinfo holds the server settings a demo records at its start.
type Serverinfo struct {
	Admin         string `info:"*admin"`
	Deathmatch    int    `info:"deathmatch"`
	Epoch         int64  `info:"epoch"`
	Fpd           int    `info:"fpd"`
	Fraglimit     int    `info:"fraglimit"`
	Gamedir       string `info:"*gamedir"`
	Hostname      string `info:"hostname"`
	Ktxmode       string `info:"ktxmode"`
	Ktxver        string `info:"ktxver"`
	Map           string `info:"map"`
	Matchtag      string `info:"matchtag"`
	Maxclients    int    `info:"maxclients"`
	Maxfps        int    `info:"maxfps"`
	Maxspectators int    `info:"maxspectators"`
	Mode          string `info:"mode"`
	Needpass      int    `info:"needpass"`
	PmKtjump      int    `info:"pm_ktjump"`
	Progs         string `info:"*progs"`
	Qvm           string `info:"*qvm"`
	Serverdemo    string `info:"serverdemo"`
	Status        string `info:"status"`
	SvAntilag     int    `info:"sv_antilag"`
	Teamplay      int    `info:"teamplay"`
	Timelimit     int    `info:"timelimit"`
	Version       string `info:"*version"`
	ZExt          int    `info:"*z_ext"`
}

// ParseServerinfo decodes a serverinfo string. Keys that fail to decode are
// left at their zero value.
func ParseServerinfo(s string) Serverinfo {
	var si Serverinfo
	_ = Decode(s, &si)
	return si
}

// IsSpectator reports whether the client joined as a spectator.
func (c Clientinfo) IsSpectator() bool { return c.Spectator != 0 }

// IsBot reports whether the client is a server-side bot.
func (c Clientinfo) IsBot() bool { return c.Bot != 0 }
