// Package filmrec 是基于内容的电影推荐引擎。
//
// 设计要点：
// - Pipeline-first: 过滤、近邻召回、后处理都是 Node，通过 pipeline.Pipeline 串联
// - 每次请求重新拟合特征空间：候选集变化时，TF-IDF 词表与标准化参数随之变化
// - 目录是只读快照（catalog.Holder），请求之间不共享可变状态
//
//	svc, _ := recommender.New(catalog.NewHolder(catalog.NewCSVLoader("movies.csv")))
//	res, _ := svc.Recommend(ctx, recommender.Request{LikedIDs: []int64{12, 48}})
package filmrec

import (
	"github.com/rushteam/filmrec/pipeline"
	"github.com/rushteam/filmrec/recommender"
)

// 轻量 facade：便于直接 import "filmrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

type Service = recommender.Service
type Request = recommender.Request
type Result = recommender.Result

const (
	KindFilter      = pipeline.KindFilter
	KindRecall      = pipeline.KindRecall
	KindPostProcess = pipeline.KindPostProcess
)
