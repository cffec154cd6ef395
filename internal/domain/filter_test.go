package domain

import "testing"

func sampleJobs() []Job {
	return []Job{
		{ID: "1", Title: "مهندس نرم‌افزار ارشد", Company: "تک‌کورپ", Location: "تورنتو، انتاریو (دورکاری)", Skills: []string{"React", "Node.js", "AWS"}},
		{ID: "2", Title: "مدیر محصول", Company: "نوآوران تک", Location: "ونکوور، بریتیش کلمبیا", Skills: []string{"Agile", "SaaS", "B2B"}},
		{ID: "3", Title: "مهندس عمران", Company: "مهندسین مشاور سازه‌گستر", Location: "مونترال، کبک", Skills: []string{"AutoCAD", "مدیریت پروژه"}},
	}
}

func ids(jobs []Job) string {
	s := ""
	for _, j := range jobs {
		s += string(j.ID)
	}
	return s
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		f    Filter
		want string
	}{
		{"zero filter keeps everything in order", Filter{}, "123"},
		{"title token", Filter{Query: "مهندس"}, "13"},
		{"zwnj insensitive", Filter{Query: "نرمافزار"}, "1"},
		{"skill case insensitive", Filter{Query: "node.js"}, "1"},
		{"company token", Filter{Query: "نوآوران"}, "2"},
		{"all tokens must match", Filter{Query: "مهندس react"}, "1"},
		{"no match", Filter{Query: "پزشک"}, ""},
		{"arabic yeh folds", Filter{Query: "مديريت"}, "3"},
		{"location substring", Filter{Location: "ونکوور"}, "2"},
		{"province", Filter{Province: "quebec"}, "3"},
		{"unknown province", Filter{Province: "yukon"}, ""},
		{"limit", Filter{Limit: 2}, "12"},
		{"query and limit", Filter{Query: "مهندس", Limit: 1}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Apply(sampleJobs(), tt.f)); got != tt.want {
				t.Errorf("Apply(%+v) = %q, want %q", tt.f, got, tt.want)
			}
		})
	}
}

func TestFilterIsZero(t *testing.T) {
	if !(Filter{Limit: 3}).IsZero() {
		t.Error("limit-only filter should be zero")
	}
	if (Filter{Query: " x "}).IsZero() {
		t.Error("query filter reported zero")
	}
}

func TestProvinceMatches(t *testing.T) {
	p, ok := LookupProvince(" Ontario ")
	if !ok {
		t.Fatal("ontario not found")
	}
	if !p.Matches("تورنتو، انتاریو (دورکاری)") || !p.Matches("Toronto, ontario") {
		t.Error("ontario should match persian and english locations")
	}
	if p.Matches("مونترال، کبک") {
		t.Error("ontario matched quebec")
	}
	if _, ok := LookupProvince("atlantis"); ok {
		t.Error("unknown slug found")
	}
}
