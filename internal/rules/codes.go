package rules

const (
	DefaultMaxHospitalDays = 5
	DefaultSurgeryPrefix   = "15"
	DefaultAdditionMarker  = "加算"
	DefaultGenericLabel    = "短手3対象手術等"
)

// Colonoscopic polypectomy / mucosal resection (K721).
var defaultColonoscopyCodes = []string{
	"150285010", // 長径2cm未満
	"150183410", // 長径2cm以上
}

// K721 additions that take the case out of basic fee 3.
var defaultSpecialAdditionCodes = []string{
	"150429570", // バルーン内視鏡加算
	"150437170", // 病変検出支援プログラム加算
}

// defaultTargets is the basic fee 3 target list. Names are only filled in
// for the procedures that appear most often in the report.
var defaultTargets = []Procedure{
	// examinations
	{Code: "160098110", Name: "終夜睡眠ポリグラフィー（安全精度管理下）"},
	{Code: "160208510", Name: "終夜睡眠ポリグラフィー（その他）"},
	{Code: "160190310", Name: "反復睡眠潜時試験（ＭＳＬＴ）"},
	{Code: "160065010", Name: "下垂体前葉負荷試験（成長ホルモン）"},
	{Code: "160177010", Name: "小児食物アレルギー負荷検査"},
	{Code: "160219210", Name: "前立腺針生検法（ＭＲＩ撮影及び超音波検査融合画像）"},
	{Code: "160110010", Name: "前立腺針生検法（その他）"},
	// skin and soft tissue
	{Code: "150391070", Name: "皮膚腫瘍冷凍凝固摘出術"},
	{Code: "150348470"},
	{Code: "150376810", Name: "経皮的放射線治療用金属マーカー留置術"},
	{Code: "150013110"},
	{Code: "150013210", Name: "四肢・躯幹軟部腫瘍摘出術（手、足）"},
	// musculoskeletal
	{Code: "150029510"},
	{Code: "150029710"},
	{Code: "150032310", Name: "骨内異物（挿入物を含む）除去術（前腕、下腿）"},
	{Code: "150032410"},
	{Code: "150042010", Name: "ガングリオン摘出術（手、足、指）"},
	{Code: "150321110", Name: "関節鏡下手根管開放手術"},
	// thorax
	{Code: "150290610", Name: "胸腔鏡下交感神経節切除術（両側）"},
	// eye
	{Code: "150357610", Name: "涙管チューブ挿入術（涙道内視鏡を用いるもの）"},
	{Code: "150066210"},
	{Code: "150066510", Name: "眼瞼内反症手術（皮膚切開法）"},
	{Code: "150067610", Name: "眼瞼下垂症手術（眼瞼挙筋前転法）"},
	{Code: "150067810"},
	{Code: "150068310", Name: "翼状片手術（弁の移植を要するもの）"},
	{Code: "150265710"},
	{Code: "150417310"},
	{Code: "150274010", Name: "水晶体再建術（眼内レンズを挿入する場合）（その他）"},
	{Code: "150274210", Name: "水晶体再建術（眼内レンズを挿入しない場合）"},
	// ear, nose, throat
	{Code: "150084310", Name: "鼓膜形成手術"},
	{Code: "150092410", Name: "鼻骨骨折整復固定術"},
	{Code: "150103510", Name: "喉頭・声帯ポリープ切除術（直達喉頭鏡又はファイバースコープ）"},
	// breast
	{Code: "150120110", Name: "乳腺腫瘍摘出術（長径5cm未満）"},
	// bronchus
	{Code: "150133410"},
	{Code: "150133610"},
	// vascular
	{Code: "150172510", Name: "下肢静脈瘤手術（抜去切除術）"},
	{Code: "150172610", Name: "下肢静脈瘤手術（硬化療法）"},
	{Code: "150172710", Name: "下肢静脈瘤手術（高位結紮術）"},
	{Code: "150245710", Name: "大伏在静脈抜去術"},
	{Code: "150355710", Name: "下肢静脈瘤血管内焼灼術"},
	{Code: "150411210", Name: "下肢静脈瘤血管内塞栓術"},
	// hernia
	{Code: "150183010", Name: "ヘルニア手術（鼠径ヘルニア）"},
	{Code: "150329010", Name: "腹腔鏡下鼠径ヘルニア手術（両側）"},
	// colon and anus
	{Code: "150285010", Name: "内視鏡的大腸ポリープ・粘膜切除術（長径2cm未満）"},
	{Code: "150183410", Name: "内視鏡的大腸ポリープ・粘膜切除術（長径2cm以上）"},
	{Code: "150189910", Name: "痔核手術（脱肛を含む）（硬化療法（四段階注射法））"},
	{Code: "150191010", Name: "肛門良性腫瘍、肛門ポリープ、肛門尖圭コンジローム切除術"},
	// urology
	{Code: "150202110", Name: "体外衝撃波腎・尿管結石破砕術"},
	{Code: "150406510"},
	{Code: "150364210", Name: "顕微鏡下精索静脈瘤手術"},
	{Code: "150213110"},
	// gynecology
	{Code: "150223410", Name: "子宮頸部（腟部）切除術"},
	{Code: "150365910", Name: "子宮鏡下有茎粘膜下筋腫切出術、子宮内膜ポリープ切除術（電解質溶液利用）"},
	{Code: "150366010", Name: "子宮鏡下有茎粘膜下筋腫切出術、子宮内膜ポリープ切除術（その他）"},
	{Code: "150366110"},
	{Code: "150366210"},
	{Code: "150290910", Name: "腹腔鏡下卵管形成術"},
	{Code: "150226810"},
	// radiotherapy
	{Code: "180018910", Name: "ガンマナイフによる定位放射線治療"},
	{Code: "180032710"},
}
