package lexicon

// actionVerbs are past-tense verbs that read as strong bullet openers.
//
//nolint:gochecknoglobals // Reference data
var actionVerbs = []string{
	"achieved", "accelerated", "accomplished", "advanced", "allocated", "analyzed",
	"built", "boosted", "balanced", "benchmarked", "broadened", "budgeted",
	"capitalized", "centralized", "championed", "clarified", "collaborated", "combined",
	"communicated", "competed", "conceptualized", "consolidated", "constructed", "consulted",
	"created", "cultivated", "customized",
	"decreased", "defined", "delegated", "delivered", "demonstrated", "designed", "developed",
	"diagnosed", "directed", "distributed", "diversified", "doubled",
	"earned", "edited", "educated", "eliminated", "embodied", "embraced", "emerged", "empowered",
	"enabled", "encouraged", "enhanced", "established", "evaluated", "exceeded", "executed",
	"expanded", "expedited", "experimented", "explored", "expressed",
	"facilitated", "financed", "focused", "forecasted", "formulated", "founded", "functioned",
	"furnished",
	"gathered", "guided", "generated", "grew", "gained", "granted",
	"headed", "harnessed", "honored",
	"identified", "illustrated", "imagined", "implemented", "improved", "increased", "influenced",
	"initiated", "innovated", "inspected", "inspired", "installed", "instituted", "integrated",
	"introduced", "invented", "invested", "isolated",
	"joined",
	"kindled", "knew",
	"launched", "led", "lectured", "licensed", "listened", "located", "logged",
	"managed", "marketed", "mastered", "maximized", "measured", "mentored", "merged",
	"minimized", "modified", "motivated", "mounted", "mobilized",
	"negotiated", "nominated", "nurtured",
	"observed", "obtained", "operated", "optimized", "orchestrated", "organized", "oriented",
	"outlined", "overhauled", "oversaw",
	"participated", "partnered", "perfected", "performed", "persuaded", "piloted", "pinpointed",
	"pioneered", "planned", "polished", "prepared", "presided", "prevented", "printed",
	"prioritized", "produced", "promoted", "protected", "proved", "provided", "published",
	"qualified", "questioned", "quit",
	"raised", "rated", "realized", "received", "recognized", "recommended", "recovered",
	"reduced", "referred", "refined", "regulated", "rehabilitated", "reinforced", "rejected",
	"related", "remodeled", "removed", "repaired", "replaced", "reported", "represented",
	"reproduced", "researched", "resolved", "restored", "restricted", "restructured",
	"retained", "retrieved", "returned", "reviewed", "revitalized", "revived", "revolutionized",
	"saved", "scheduled", "screened", "scrutinized", "searched", "secured", "selected",
	"served", "shaped", "shared", "showed", "simplified", "solved", "spearheaded", "specified",
	"sped", "stimulated", "strengthened", "studied", "succeeded", "suggested", "summarized",
	"supervised", "supplied", "supported", "surpassed", "surveyed", "sustained",
	"tailored", "targeted", "taught", "tested", "timed", "transformed", "translated",
	"transported", "trimmed", "troubled", "truncated", "trusted", "turned",
	"united", "unveiled", "updated", "upgraded", "utilized",
	"validated", "verified", "visualized", "voiced",
	"won", "wrote",
}
