// Package nametable is the process-wide AAMP name table: a CRC32 → string
// map used to recover parameter/object/list names for textual emission when
// the original string is known (spec §4.6, §5). It is seeded once from an
// embedded dictionary and a set of derived numeric-suffix names, then never
// mutated again.
package nametable

import (
	"hash/crc32"
	"strconv"
	"sync"
)

// baseNames is a small embedded dictionary of common BOTW parameter/object/
// list names. It is not exhaustive — unresolved hashes fall back to the hex
// form (spec §4.6). The names used by this module's own round-trip tests
// are not in it, so those tests go through the hex fallback.
var baseNames = []string{
	"ParamSet", "ParamRoot", "param_root",
	"ActorRoot", "ActorLink", "LinkTarget",
	"Header", "GeneralParamSet", "GParamList", "AnimationInfo",
	"Name", "SubName", "ClassName", "PriorityInputDevice",
	"ParamUser", "UserData", "UserIOData",
	"TextureHostTag", "BoneGroup", "BoneName",
	"AIProgram", "AIProgramUser", "AIDef",
	"AI", "Action", "Behavior", "Query", "AS", "ASDef", "ASUser",
	"Attachment", "Cue", "AttentionPoint", "AttentionPointSet",
	"Physics", "RigidBody", "RigidBodySet", "Shape", "ShapeSet",
	"Collision", "ContactPointInfo", "EdgeRigidBody",
	"AnimalUnit", "ArmorEffect", "ArmorHead", "ArmorUpper", "ArmorLower",
	"Chemical", "ChemicalUnit",
	"Drop", "DropTable", "ItemRow", "ItemColumn",
	"Event", "EventFlow", "EventFlowData",
	"GParamAddRes", "GParamAnimalUnit", "GParamArmor",
	"GParamAttack", "GParamAutoGen", "GParamBow",
	"GParamBullet", "GParamCamera", "GParamCureItem",
	"GParamEnemyLevel", "GParamGelEnemy", "GParamGiantArmor",
	"GParamGrab", "GParamGuardian", "GParamHorseUnit",
	"GParamInsect", "GParamLargeSword", "GParamLiftable",
	"GParamPlayer", "GParamPrey", "GParamRod", "GParamRope",
	"GParamSandworm", "GParamSeriesArmor", "GParamShield",
	"GParamSmallSword", "GParamSpear", "GParamSystem",
	"GParamThrow", "GParamTraveler", "GParamWeaponCommon",
	"GParamWizzrobe", "GParamZora",
	"LifeCondition", "LargeSwordBaseUserData", "SmallSwordBaseUserData",
	"SpearBaseUserData", "BowBaseUserData", "ShieldBaseUserData",
	"ArmorBaseUserData", "ArrowBaseUserData", "GuardBaseUserData",
	"WeaponCommon", "WeaponThrow", "Rod",
	"AreaObj", "AreaObjInfo", "MapArea", "LoadType",
	"System", "SystemUserData", "ModelInfo", "SoundInfo",
	"Cloth", "ClothSetting", "ClothReactionSetting", "ClothSubWindSetting",
	"Cam", "CamSetting", "CameraLookAt",
	"Recipe", "RecipeData", "RandomItem",
}

// numberedSuffixBases lists base names from the embedded dictionary that occur
// in practice with a numeric suffix, either bare (Name0) or underscore-joined
// (Name_0), matching the naming convention original_source/'s own test
// fixtures exercise for counted sub-records.
var numberedSuffixBases = []string{
	"ItemRow", "ItemColumn", "RecipeData", "RandomItem",
	"ArmorEffect", "Chemical", "BoneGroup", "BoneName",
}

var (
	once  sync.Once
	table map[uint32]string
)

func hash(name string) uint32 {
	return crc32.ChecksumIEEE([]byte(name))
}

func build() map[uint32]string {
	m := make(map[uint32]string, len(baseNames)*2)
	for _, n := range baseNames {
		m[hash(n)] = n
	}
	for _, base := range numberedSuffixBases {
		for i := 0; i < 1000; i++ {
			bare := base + strconv.Itoa(i)
			m[hash(bare)] = bare
			underscored := base + "_" + strconv.Itoa(i)
			m[hash(underscored)] = underscored
		}
	}
	return m
}

func ensureInit() {
	once.Do(func() { table = build() })
}

// Lookup resolves a CRC32 name hash to its original string, if known.
// Resolution failure is non-fatal for callers: the hex hash form is used
// instead (spec §4.6). The table is built on first use and is read-only
// thereafter, safe for concurrent callers (spec §5).
func Lookup(h uint32) (string, bool) {
	ensureInit()
	s, ok := table[h]
	return s, ok
}

// Hash computes the CRC32/IEEE hash used to key the table, exposed so
// callers can pre-hash a candidate name without re-importing crc32
// themselves.
func Hash(name string) uint32 { return hash(name) }
