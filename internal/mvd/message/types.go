// Package message decodes the protocol messages carried in an MVD frame body.
//
// Only Print, UpdateFrags and UpdatePing carry a decoded payload. Every other
// tag is recognised by its type code only.
package message

// Type is the one byte message catalogue code.
type Type uint8

const (
	TypeBad                 Type = 0
	TypeNop                 Type = 1
	TypeDisconnect          Type = 2
	TypeUpdateStat          Type = 3
	TypeNqVersion           Type = 4
	TypeNqSetview           Type = 5
	TypeSound               Type = 6
	TypeNqTime              Type = 7
	TypePrint               Type = 8
	TypeStufftext           Type = 9
	TypeSetAngle            Type = 10
	TypeServerData          Type = 11
	TypeLightstyle          Type = 12
	TypeNqUpdateName        Type = 13
	TypeUpdateFrags         Type = 14
	TypeNqClientdata        Type = 15
	TypeStopSound           Type = 16
	TypeNqUpdateColors      Type = 17
	TypeNqParticle          Type = 18
	TypeDamage              Type = 19
	TypeSpawnStatic         Type = 20
	TypeFteSpawnStatic2     Type = 21
	TypeSpawnBaseline       Type = 22
	TypeTempEntity          Type = 23
	TypeSetPause            Type = 24
	TypeNqSignonnum         Type = 25
	TypeCenterPrint         Type = 26
	TypeKilledmonster       Type = 27
	TypeFoundSecret         Type = 28
	TypeSpawnStaticSound    Type = 29
	TypeIntermission        Type = 30
	TypeFinale              Type = 31
	TypeCdtrack             Type = 32
	TypeSellscreen          Type = 33
	TypeSmallkick           Type = 34
	TypeBigkick             Type = 35
	TypeUpdatePing          Type = 36
	TypeUpdateEntertime     Type = 37
	TypeUpdateStatLong      Type = 38
	TypeMuzzleflash         Type = 39
	TypeUpdateUserinfo      Type = 40
	TypeDownload            Type = 41
	TypePlayerinfo          Type = 42
	TypeNails               Type = 43
	TypeChokeCount          Type = 44
	TypeModellist           Type = 45
	TypeSoundlist           Type = 46
	TypePacketentities      Type = 47
	TypeDeltapacketentities Type = 48
	TypeMaxspeed            Type = 49
	TypeEntgravity          Type = 50
	TypeSetinfo             Type = 51
	TypeServerinfo          Type = 52
	TypeUpdatePl            Type = 53
	TypeNails2              Type = 54
	TypeFteModellistshort   Type = 60
	TypeFteSpawnbaseline2   Type = 66
	TypeEndOfDemo           Type = 69
	TypeQizmoVoice          Type = 83
	TypeFteVoiceChat        Type = 84
	TypeUnknown             Type = 255
)

var typeNames = map[Type]string{
	TypeBad: "bad", TypeNop: "nop", TypeDisconnect: "disconnect", TypeUpdateStat: "updatestat",
	TypeNqVersion: "nq_version", TypeNqSetview: "nq_setview", TypeSound: "sound", TypeNqTime: "nq_time",
	TypePrint: "print", TypeStufftext: "stufftext", TypeSetAngle: "setangle", TypeServerData: "serverdata",
	TypeLightstyle: "lightstyle", TypeNqUpdateName: "nq_updatename", TypeUpdateFrags: "updatefrags",
	TypeNqClientdata: "nq_clientdata", TypeStopSound: "stopsound", TypeNqUpdateColors: "nq_updatecolors",
	TypeNqParticle: "nq_particle", TypeDamage: "damage", TypeSpawnStatic: "spawnstatic",
	TypeFteSpawnStatic2: "fte_spawnstatic2", TypeSpawnBaseline: "spawnbaseline", TypeTempEntity: "temp_entity",
	TypeSetPause: "setpause", TypeNqSignonnum: "nq_signonnum", TypeCenterPrint: "centerprint",
	TypeKilledmonster: "killedmonster", TypeFoundSecret: "foundsecret", TypeSpawnStaticSound: "spawnstaticsound",
	TypeIntermission: "intermission", TypeFinale: "finale", TypeCdtrack: "cdtrack", TypeSellscreen: "sellscreen",
	TypeSmallkick: "smallkick", TypeBigkick: "bigkick", TypeUpdatePing: "updateping",
	TypeUpdateEntertime: "updateentertime", TypeUpdateStatLong: "updatestatlong", TypeMuzzleflash: "muzzleflash",
	TypeUpdateUserinfo: "updateuserinfo", TypeDownload: "download", TypePlayerinfo: "playerinfo",
	TypeNails: "nails", TypeChokeCount: "chokecount", TypeModellist: "modellist", TypeSoundlist: "soundlist",
	TypePacketentities: "packetentities", TypeDeltapacketentities: "deltapacketentities",
	TypeMaxspeed: "maxspeed", TypeEntgravity: "entgravity", TypeSetinfo: "setinfo", TypeServerinfo: "serverinfo",
	TypeUpdatePl: "updatepl", TypeNails2: "nails2", TypeFteModellistshort: "fte_modellistshort",
	TypeFteSpawnbaseline2: "fte_spawnbaseline2", TypeEndOfDemo: "endofdemo", TypeQizmoVoice: "qizmovoice",
	TypeFteVoiceChat: "fte_voicechat",
}

// TypeOf maps a tag byte to its catalogue type. Undefined codes map to TypeUnknown.
func TypeOf(b byte) Type {
	t := Type(b)
	if _, ok := typeNames[t]; ok {
		return t
	}
	return TypeUnknown
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// PrintID is the print level of a Print message.
type PrintID uint8

const (
	PrintLow     PrintID = 0
	PrintMedium  PrintID = 1
	PrintHigh    PrintID = 2
	PrintChat    PrintID = 3
	PrintUnknown PrintID = 255
)

// PrintIDOf maps a print level byte to its PrintID.
func PrintIDOf(b byte) PrintID {
	if b <= byte(PrintChat) {
		return PrintID(b)
	}
	return PrintUnknown
}

func (p PrintID) String() string {
	switch p {
	case PrintLow:
		return "low"
	case PrintMedium:
		return "medium"
	case PrintHigh:
		return "high"
	case PrintChat:
		return "chat"
	default:
		return "unknown"
	}
}
